// Package rateset defines the stored form of a named list of reaction rates
// and the persistence contract implemented by the infra storage drivers.
package rateset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a named rate set is not present in a store.
	ErrNotFound = errors.New("rateset: not found")
	// ErrInvalidName is returned for empty or path-like rate set names.
	ErrInvalidName = errors.New("rateset: invalid name")
	// ErrInvalidPayload is returned when a document payload is not a JSON array.
	ErrInvalidPayload = errors.New("rateset: payload must be a JSON array")
)

// MaxNameLength bounds rate set names so they fit a primary key and a blob key.
const MaxNameLength = 128

// Document is one named rate set. Payload holds the JSON array of
// ReactionRate envelopes exactly as produced by serial.MarshalList.
type Document struct {
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	Count     int             `json:"count"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Summary is the listing view of a Document.
type Summary struct {
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary returns the listing view of d.
func (d Document) Summary() Summary {
	return Summary{Name: d.Name, Count: d.Count, UpdatedAt: d.UpdatedAt}
}

// Clone returns a deep copy of d so stores never share payload buffers with callers.
func (d Document) Clone() Document {
	out := d
	if d.Payload != nil {
		out.Payload = append(json.RawMessage(nil), d.Payload...)
	}
	return out
}

// Validate checks the name and that the payload is a JSON array.
func (d Document) Validate() error {
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(string(d.Payload))
	if !strings.HasPrefix(trimmed, "[") || !json.Valid(d.Payload) {
		return fmt.Errorf("%w: %s", ErrInvalidPayload, d.Name)
	}
	if d.Count < 0 {
		return fmt.Errorf("rateset: negative count for %s", d.Name)
	}
	return nil
}

// ValidateName rejects names that are empty, too long, padded with spaces or
// that could be mistaken for a path when used as a blob key.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case len(name) > MaxNameLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidName, MaxNameLength)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`) || strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q looks like a path", ErrInvalidName, name)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: %q contains control characters", ErrInvalidName, name)
		}
	}
	return nil
}

// Store persists rate set documents. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put inserts or replaces the document with the same name.
	Put(ctx context.Context, doc Document) error
	// Get returns the named document or an error matching ErrNotFound.
	Get(ctx context.Context, name string) (Document, error)
	// Delete removes the named document and reports whether it existed.
	Delete(ctx context.Context, name string) (bool, error)
	// List returns summaries ordered by name.
	List(ctx context.Context) ([]Summary, error)
	// Close releases any underlying resources.
	Close() error
}

// NotFound wraps ErrNotFound with the missing name.
func NotFound(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}
