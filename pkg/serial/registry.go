package serial

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrDuplicateTag is returned when a tag is registered twice.
	ErrDuplicateTag = errors.New("serial: duplicate tag")
	// ErrUnsupportedType is matched by *UnsupportedTypeError.
	ErrUnsupportedType = errors.New("serial: unsupported type")
)

// UnsupportedTypeError reports an envelope whose tag has no decoder in the registry.
type UnsupportedTypeError struct {
	Tag string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("serial: unsupported type %q", e.Tag)
}

// Unwrap allows errors.Is(err, ErrUnsupportedType).
func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// DecodeFunc rebuilds an entity from its fields. Nested envelopes are decoded
// through reg so that callers can restrict the set of supported kinds.
type DecodeFunc func(fields Fields, reg *Registry) (Serializable, error)

// Registry maps tags to decoders.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]DecodeFunc
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]DecodeFunc)}
}

// Register adds a decoder for tag.
func (r *Registry) Register(tag string, fn DecodeFunc) error {
	if tag == "" {
		return fmt.Errorf("serial: register: empty tag")
	}
	if fn == nil {
		return fmt.Errorf("serial: register %q: nil decoder", tag)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.decoders[tag]; exists {
		return fmt.Errorf("%w: %s already registered", ErrDuplicateTag, tag)
	}
	r.decoders[tag] = fn
	return nil
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.decoders))
	for tag := range r.decoders {
		out = append(out, tag)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Supports reports whether tag has a decoder.
func (r *Registry) Supports(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.decoders[tag]
	return ok
}

// Decode rebuilds an entity from v, which may be an Envelope or its generic
// decoded JSON form.
func (r *Registry) Decode(v any) (Serializable, error) {
	env, err := AsEnvelope(v)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	fn, ok := r.decoders[env.Tag]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedTypeError{Tag: env.Tag}
	}
	out, err := fn(env.Fields, r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", env.Tag, err)
	}
	return out, nil
}
