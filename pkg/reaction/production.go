package reaction

import (
	"fmt"
	"iter"

	"reactcore/pkg/nuclide"
	"reactcore/pkg/serial"
)

// TagProductionReaction is the envelope tag for production reactions.
const TagProductionReaction = "ProductionReaction"

type productionKey struct {
	parent nuclide.ZAID
	target nuclide.ZAID
	typus  string
}

// ProductionReaction records only the net product of a reaction. Energy, nu
// and branching are always zero or empty.
type ProductionReaction struct {
	parent nuclide.ZAID
	target nuclide.ZAID
	typus  string
}

// Production returns the interned production reaction. Identifiers outside
// the integer encoding are reported by Serialize.
func (in *Interner) Production(parent, target nuclide.ZAID, typus string) *ProductionReaction {
	key := productionKey{parent: parent, target: target, typus: typus}
	p, hit, n := in.productions.getOrInsert(key, func() *ProductionReaction {
		return &ProductionReaction{parent: parent, target: target, typus: typus}
	})
	in.record(KindProduction, hit, n)
	return p
}

// ProductionFromCategory maps a production category onto parent.
func (in *Interner) ProductionFromCategory(parent nuclide.ZAID, category ProductionReactionCategory) *ProductionReaction {
	return in.Production(parent, category.produces, category.String())
}

// NewProduction returns a production reaction from the default interner.
func NewProduction(parent, target nuclide.ZAID, typus string) *ProductionReaction {
	return Default().Production(parent, target, typus)
}

// ProductionFromCategory maps a production category onto parent in the default interner.
func ProductionFromCategory(parent nuclide.ZAID, category ProductionReactionCategory) *ProductionReaction {
	return Default().ProductionFromCategory(parent, category)
}

func (p *ProductionReaction) Parent() nuclide.ZAID { return p.parent }

func (p *ProductionReaction) Target() nuclide.ZAID { return p.target }

func (p *ProductionReaction) Typus() string { return p.typus }

func (p *ProductionReaction) Nu() float64 { return 0 }

func (p *ProductionReaction) Energy() float64 { return 0 }

func (p *ProductionReaction) EnergyErr() float64 { return 0 }

func (p *ProductionReaction) Branching() map[nuclide.ZAID]float64 {
	return map[nuclide.ZAID]float64{}
}

// Branches yields the production reaction itself with weight 1.
func (p *ProductionReaction) Branches() iter.Seq2[Concrete, float64] {
	return func(yield func(Concrete, float64) bool) {
		yield(p, 1)
	}
}

// Equal compares parent, target and tag.
func (p *ProductionReaction) Equal(other *ProductionReaction) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.parent == other.parent && p.target == other.target && p.typus == other.typus
}

func (p *ProductionReaction) String() string { return p.typus }

// SerialTag implements serial.Serializable.
func (p *ProductionReaction) SerialTag() string { return TagProductionReaction }

// Serialize implements serial.Serializable.
func (p *ProductionReaction) Serialize() (serial.Envelope, error) {
	if p == nil {
		return serial.Envelope{}, ErrNilReaction
	}
	if err := p.parent.Validate(); err != nil {
		return serial.Envelope{}, fmt.Errorf("parent: %w", err)
	}
	if err := p.target.Validate(); err != nil {
		return serial.Envelope{}, fmt.Errorf("target: %w", err)
	}
	return serial.New(TagProductionReaction, serial.Fields{
		"parent": p.parent.Encode(),
		"target": p.target.Encode(),
		"typus":  p.typus,
	}), nil
}
