package core

import (
	"errors"
	"fmt"
)

// Kinds of objects reported by ErrNotFound.
const (
	KindRateSet = "rate set"
	KindExport  = "export"
)

// ErrNotFound is returned when a named rate set or exported blob is missing.
type ErrNotFound struct {
	Kind string
	Name string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Name)
}

// IsNotFound reports whether err is an ErrNotFound of any kind.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

// ErrNotRate is returned when a stored list holds an envelope that is not a ReactionRate.
var ErrNotRate = errors.New("core: rate set item is not a ReactionRate")
