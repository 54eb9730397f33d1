// Package serial implements the tagged envelope used to persist catalog
// entities as JSON. Every entity serializes to a two element array of
// ["<tag>", {fields}] and decodes back through a caller supplied Registry.
package serial

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedEnvelope is returned when a value does not have the ["tag", {fields}] shape.
	ErrMalformedEnvelope = errors.New("serial: malformed envelope")
	// ErrInvalidField is matched by every *FieldError.
	ErrInvalidField = errors.New("serial: invalid field")
)

// Fields is the field mapping carried by an envelope.
type Fields map[string]any

// Envelope is the (tag, fields) pair produced by Serialize.
type Envelope struct {
	Tag    string
	Fields Fields
}

// Serializable is implemented by every entity that can be written as an envelope.
type Serializable interface {
	SerialTag() string
	Serialize() (Envelope, error)
}

// New builds an envelope for tag. A nil field map is replaced with an empty one.
func New(tag string, fields Fields) Envelope {
	if fields == nil {
		fields = Fields{}
	}
	return Envelope{Tag: tag, Fields: fields}
}

// MarshalJSON encodes the envelope as ["tag", {fields}].
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Tag == "" {
		return nil, fmt.Errorf("%w: empty tag", ErrMalformedEnvelope)
	}
	fields := e.Fields
	if fields == nil {
		fields = Fields{}
	}
	return json.Marshal([2]any{e.Tag, map[string]any(fields)})
}

// UnmarshalJSON decodes the ["tag", {fields}] array form.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("%w: want 2 elements, got %d", ErrMalformedEnvelope, len(parts))
	}
	var tag string
	if err := json.Unmarshal(parts[0], &tag); err != nil || tag == "" {
		return fmt.Errorf("%w: tag must be a non-empty string", ErrMalformedEnvelope)
	}
	if bytes.Equal(bytes.TrimSpace(parts[1]), []byte("null")) {
		return fmt.Errorf("%w: fields must be an object", ErrMalformedEnvelope)
	}
	var fields map[string]any
	if err := json.Unmarshal(parts[1], &fields); err != nil {
		return fmt.Errorf("%w: fields must be an object", ErrMalformedEnvelope)
	}
	e.Tag = tag
	e.Fields = fields
	return nil
}

// AsEnvelope converts v into an Envelope. It accepts an Envelope, a pointer to
// one, or the generic decoded JSON form []any{"tag", map[string]any{...}}.
func AsEnvelope(v any) (Envelope, error) {
	switch t := v.(type) {
	case Envelope:
		if t.Tag == "" {
			return Envelope{}, fmt.Errorf("%w: empty tag", ErrMalformedEnvelope)
		}
		return New(t.Tag, t.Fields), nil
	case *Envelope:
		if t == nil {
			return Envelope{}, fmt.Errorf("%w: nil envelope", ErrMalformedEnvelope)
		}
		return AsEnvelope(*t)
	case []any:
		if len(t) != 2 {
			return Envelope{}, fmt.Errorf("%w: want 2 elements, got %d", ErrMalformedEnvelope, len(t))
		}
		tag, ok := t[0].(string)
		if !ok || tag == "" {
			return Envelope{}, fmt.Errorf("%w: tag must be a non-empty string", ErrMalformedEnvelope)
		}
		switch fields := t[1].(type) {
		case map[string]any:
			return New(tag, Fields(fields)), nil
		case Fields:
			return New(tag, fields), nil
		default:
			return Envelope{}, fmt.Errorf("%w: fields must be an object, got %T", ErrMalformedEnvelope, t[1])
		}
	case json.RawMessage:
		var env Envelope
		if err := json.Unmarshal(t, &env); err != nil {
			return Envelope{}, err
		}
		return env, nil
	default:
		return Envelope{}, fmt.Errorf("%w: unexpected %T", ErrMalformedEnvelope, v)
	}
}

// Marshal serializes s and encodes the resulting envelope as JSON.
func Marshal(s Serializable) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil value", ErrMalformedEnvelope)
	}
	env, err := s.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", s.SerialTag(), err)
	}
	return json.Marshal(env)
}

// Unmarshal decodes a single JSON envelope through reg.
func Unmarshal(data []byte, reg *Registry) (Serializable, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return reg.Decode(env)
}

// MarshalList encodes items as a JSON array of envelopes.
func MarshalList[T Serializable](items []T) ([]byte, error) {
	envs := make([]Envelope, 0, len(items))
	for i, item := range items {
		env, err := item.Serialize()
		if err != nil {
			return nil, fmt.Errorf("serialize item %d: %w", i, err)
		}
		envs = append(envs, env)
	}
	return json.Marshal(envs)
}

// UnmarshalList decodes a JSON array of envelopes through reg.
func UnmarshalList(data []byte, reg *Registry) ([]Serializable, error) {
	var envs []Envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, err
	}
	out := make([]Serializable, 0, len(envs))
	for i, env := range envs {
		v, err := reg.Decode(env)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
