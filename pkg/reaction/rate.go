package reaction

import (
	"fmt"
	"iter"
	"math"

	"reactcore/pkg/nuclide"
	"reactcore/pkg/serial"
)

// TagReactionRate is the envelope tag for reaction rates.
const TagReactionRate = "ReactionRate"

const (
	rateAbsTol = 1e-14
	rateRelTol = 1e-10
)

// Rate is a measured reaction rate in 1/(s*cm^3) for one component. It is a
// plain value and is not interned.
type Rate struct {
	Component string
	Reaction  Type
	Mean      float64
	Std       float64
}

// NewRate builds a rate.
func NewRate(component string, reaction Type, mean, std float64) Rate {
	return Rate{Component: component, Reaction: reaction, Mean: mean, Std: std}
}

// RateFrom copies component and reaction from template with new statistics.
func RateFrom(template Rate, mean, std float64) Rate {
	return Rate{Component: template.Component, Reaction: template.Reaction, Mean: mean, Std: std}
}

// Expand yields one rate per branch of the wrapped reaction with mean and std
// scaled by the branch weight. A proto reaction with empty branching yields
// nothing.
func (r Rate) Expand() iter.Seq[Rate] {
	return func(yield func(Rate) bool) {
		if r.Reaction == nil {
			return
		}
		for branch, weight := range r.Reaction.Branches() {
			if !yield(Rate{Component: r.Component, Reaction: branch, Mean: r.Mean * weight, Std: r.Std * weight}) {
				return
			}
		}
	}
}

// Scale multiplies mean and std by f.
func (r Rate) Scale(f float64) Rate {
	return RateFrom(r, r.Mean*f, r.Std*f)
}

// Mul scales by a numeric value and rejects anything else.
func (r Rate) Mul(v any) (Rate, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case uintptr:
		f = float64(n)
	default:
		return Rate{}, fmt.Errorf("%w: %T", ErrNonNumericScale, v)
	}
	return r.Scale(f), nil
}

func closeTo(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= rateAbsTol+rateRelTol*math.Abs(b)
}

// Equal compares component, reaction identity and statistics within tolerance.
func (r Rate) Equal(other Rate) bool {
	return r.Component == other.Component &&
		Same(r.Reaction, other.Reaction) &&
		closeTo(r.Mean, other.Mean) &&
		closeTo(r.Std, other.Std)
}

// Parent returns the parent nuclide of the wrapped reaction.
func (r Rate) Parent() nuclide.ZAID {
	if r.Reaction == nil {
		return nuclide.ZAID{}
	}
	return r.Reaction.Parent()
}

// Target returns the target of a concrete reaction.
func (r Rate) Target() (nuclide.ZAID, error) {
	c, ok := r.Reaction.(Concrete)
	if !ok {
		return nuclide.ZAID{}, fmt.Errorf("%w: %v", ErrNoTarget, r.Reaction)
	}
	return c.Target(), nil
}

// Branching returns the branching ratios of the wrapped reaction.
func (r Rate) Branching() map[nuclide.ZAID]float64 {
	if r.Reaction == nil {
		return map[nuclide.ZAID]float64{}
	}
	return r.Reaction.Branching()
}

// Rate returns the mean.
func (r Rate) Rate() float64 { return r.Mean }

// Typus returns the tag of the wrapped reaction.
func (r Rate) Typus() string {
	if r.Reaction == nil {
		return ""
	}
	return r.Reaction.Typus()
}

// Nu returns the mean neutron multiplicity of the wrapped reaction.
func (r Rate) Nu() float64 {
	if r.Reaction == nil {
		return 0
	}
	return r.Reaction.Nu()
}

// Energy returns the released energy per reaction in eV, 0 when unknown.
func (r Rate) Energy() float64 {
	if r.Reaction == nil {
		return 0
	}
	return r.Reaction.Energy()
}

func (r Rate) String() string {
	return fmt.Sprintf("%s %v: %g +/- %g", r.Component, r.Reaction, r.Mean, r.Std)
}

// SerialTag implements serial.Serializable.
func (r Rate) SerialTag() string { return TagReactionRate }

// Serialize implements serial.Serializable.
func (r Rate) Serialize() (serial.Envelope, error) {
	if r.Reaction == nil {
		return serial.Envelope{}, ErrNilReaction
	}
	reaction, err := r.Reaction.Serialize()
	if err != nil {
		return serial.Envelope{}, err
	}
	return serial.New(TagReactionRate, serial.Fields{
		"component": r.Component,
		"reaction":  reaction,
		"mean":      r.Mean,
		"std":       r.Std,
	}), nil
}
