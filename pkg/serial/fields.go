package serial

import (
	"encoding/json"
	"fmt"
	"math"
)

// FieldError describes a missing or mistyped envelope field.
type FieldError struct {
	Key  string
	Want string
	Got  any
}

func (e *FieldError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("serial: field %q: missing %s", e.Key, e.Want)
	}
	return fmt.Sprintf("serial: field %q: want %s, got %T", e.Key, e.Want, e.Got)
}

// Unwrap allows errors.Is(err, ErrInvalidField).
func (e *FieldError) Unwrap() error { return ErrInvalidField }

// String returns a string field.
func (f Fields) String(key string) (string, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return "", &FieldError{Key: key, Want: "string"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &FieldError{Key: key, Want: "string", Got: v}
	}
	return s, nil
}

// OptionalString returns a string field that may be null or absent.
func (f Fields) OptionalString(key string) (string, bool, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, &FieldError{Key: key, Want: "string", Got: v}
	}
	return s, true, nil
}

// Float returns a numeric field as float64.
func (f Fields) Float(key string) (float64, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return 0, &FieldError{Key: key, Want: "number"}
	}
	n, ok := toFloat(v)
	if !ok {
		return 0, &FieldError{Key: key, Want: "number", Got: v}
	}
	return n, nil
}

// FloatOr returns a numeric field, or def when the field is absent.
func (f Fields) FloatOr(key string, def float64) (float64, error) {
	if v, ok := f[key]; !ok || v == nil {
		return def, nil
	}
	return f.Float(key)
}

// Int returns a numeric field holding a whole number.
func (f Fields) Int(key string) (int, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return 0, &FieldError{Key: key, Want: "integer"}
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	}
	n, ok := toFloat(v)
	if !ok || n != math.Trunc(n) || math.IsInf(n, 0) {
		return 0, &FieldError{Key: key, Want: "integer", Got: v}
	}
	return int(n), nil
}

// Envelope returns a nested envelope field.
func (f Fields) Envelope(key string) (Envelope, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return Envelope{}, &FieldError{Key: key, Want: "envelope"}
	}
	env, err := AsEnvelope(v)
	if err != nil {
		return Envelope{}, &FieldError{Key: key, Want: "envelope", Got: v}
	}
	return env, nil
}

// List returns an array field. Absent or null fields yield an empty list.
func (f Fields) List(key string) ([]any, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case []any:
		return t, nil
	case []Envelope:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, nil
	default:
		return nil, &FieldError{Key: key, Want: "array", Got: v}
	}
}

// FloatMap returns an object field whose values are numbers.
func (f Fields) FloatMap(key string) (map[string]float64, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return map[string]float64{}, nil
	}
	switch t := v.(type) {
	case map[string]float64:
		out := make(map[string]float64, len(t))
		for k, n := range t {
			out[k] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]float64, len(t))
		for k, raw := range t {
			n, ok := toFloat(raw)
			if !ok {
				return nil, &FieldError{Key: key + "." + k, Want: "number", Got: raw}
			}
			out[k] = n
		}
		return out, nil
	default:
		return nil, &FieldError{Key: key, Want: "object", Got: v}
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
