package reaction

import (
	"errors"
	"fmt"
)

var (
	// ErrFissionTarget is returned when a target is requested for a fission category.
	ErrFissionTarget = errors.New("reaction: fission has no specific target")
	// ErrUnsupportedCategory is matched by *UnsupportedCategoryError.
	ErrUnsupportedCategory = errors.New("reaction: unsupported category")
	// ErrSpectraUnsupported is returned when a proto reaction is built with spectra.
	ErrSpectraUnsupported = errors.New("reaction: spectra are not implemented")
	// ErrNonNumericScale is returned when a rate is scaled by a non-numeric value.
	ErrNonNumericScale = errors.New("reaction: scale factor must be numeric")
	// ErrNoTarget is returned when a rate wraps a reaction without a single target.
	ErrNoTarget = errors.New("reaction: reaction has no single target")
	// ErrNilReaction is returned when an operation needs a reaction and got nil.
	ErrNilReaction = errors.New("reaction: nil reaction")
)

// UnsupportedCategoryError reports a category whose inducing particle cannot
// be determined from its tag.
type UnsupportedCategoryError struct {
	Typus  string
	Symbol string
}

func (e *UnsupportedCategoryError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("reaction: unsupported induced_by for category %s", e.Typus)
	}
	return fmt.Sprintf("reaction: unsupported induced_by for category %s: %s", e.Typus, e.Symbol)
}

// Unwrap allows errors.Is(err, ErrUnsupportedCategory).
func (e *UnsupportedCategoryError) Unwrap() error { return ErrUnsupportedCategory }
