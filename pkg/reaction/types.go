package reaction

import (
	"iter"

	"reactcore/pkg/nuclide"
	"reactcore/pkg/serial"
)

// Type is the capability set shared by *ProtoReaction, *Reaction and
// *ProductionReaction.
type Type interface {
	Parent() nuclide.ZAID
	Typus() string
	Nu() float64
	Energy() float64
	EnergyErr() float64
	Branching() map[nuclide.ZAID]float64
	Branches() iter.Seq2[Concrete, float64]
	String() string
	serial.Serializable
}

// Concrete is a Type with exactly one target nuclide.
type Concrete interface {
	Type
	Target() nuclide.ZAID
}

var (
	_ Type     = (*ProtoReaction)(nil)
	_ Concrete = (*Reaction)(nil)
	_ Concrete = (*ProductionReaction)(nil)
)

// Same reports whether a and b have equal identity keys. Values of different
// kinds are never the same.
func Same(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *ProtoReaction:
		y, ok := b.(*ProtoReaction)
		return ok && x.Equal(y)
	case *Reaction:
		y, ok := b.(*Reaction)
		return ok && x.Equal(y)
	case *ProductionReaction:
		y, ok := b.(*ProductionReaction)
		return ok && x.Equal(y)
	default:
		return false
	}
}
