package reaction

import (
	"fmt"
	"iter"

	"reactcore/pkg/nuclide"
	"reactcore/pkg/serial"
)

// TagReaction is the envelope tag for reactions.
const TagReaction = "Reaction"

// ReactionOptions carries the attributes of ReactionFromCategory. A non-nil
// Target overrides the computed target; it may point at nuclide.Sink.
type ReactionOptions struct {
	Target    *nuclide.ZAID
	Branching map[nuclide.ZAID]float64
	Spectra   []Spectrum
	Nu        float64
	Energy    float64
	EnergyErr float64
}

type reactionKey struct {
	proto  *ProtoReaction
	target nuclide.ZAID
}

// Reaction is one resolved branch of a proto reaction. Scalar attributes are
// delegated to the proto reaction.
type Reaction struct {
	proto  *ProtoReaction
	target nuclide.ZAID
}

func (in *Interner) reaction(proto *ProtoReaction, target nuclide.ZAID) *Reaction {
	r, hit, n := in.reactions.getOrInsert(reactionKey{proto: proto, target: target}, func() *Reaction {
		return &Reaction{proto: proto, target: target}
	})
	in.record(KindReaction, hit, n)
	return r
}

// Reaction returns the interned reaction for proto and target.
func (in *Interner) Reaction(proto *ProtoReaction, target nuclide.ZAID) (*Reaction, error) {
	if proto == nil {
		return nil, fmt.Errorf("%w: proto reaction required", ErrNilReaction)
	}
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	return in.reaction(proto, target), nil
}

// ReactionFromCategory builds the proto reaction for category and resolves
// its target, either from opts.Target or by CalcTarget.
func (in *Interner) ReactionFromCategory(parent nuclide.ZAID, category ReactionCategory, opts ReactionOptions) (*Reaction, error) {
	if len(opts.Spectra) > 0 {
		return nil, fmt.Errorf("%w: %d spectra for %s%s", ErrSpectraUnsupported, len(opts.Spectra), parent, category)
	}
	var target nuclide.ZAID
	if opts.Target != nil {
		target = *opts.Target
		if err := target.Validate(); err != nil {
			return nil, fmt.Errorf("target: %w", err)
		}
	} else {
		computed, err := category.CalcTarget(parent, in.Catalog())
		if err != nil {
			return nil, err
		}
		target = computed
	}
	branching := opts.Branching
	if len(branching) == 0 && in.Branching() == BranchingExplicit && !category.IsFission() {
		branching = map[nuclide.ZAID]float64{target: 1}
	}
	proto, err := in.Proto(parent, category.String(), ProtoOptions{
		Branching: branching,
		Nu:        opts.Nu,
		Energy:    opts.Energy,
		EnergyErr: opts.EnergyErr,
	})
	if err != nil {
		return nil, err
	}
	return in.reaction(proto, target), nil
}

// NewReaction returns the reaction for proto and target in the default interner.
func NewReaction(proto *ProtoReaction, target nuclide.ZAID) (*Reaction, error) {
	return Default().Reaction(proto, target)
}

// ReactionFromCategory builds a reaction from a category in the default interner.
func ReactionFromCategory(parent nuclide.ZAID, category ReactionCategory, opts ReactionOptions) (*Reaction, error) {
	return Default().ReactionFromCategory(parent, category, opts)
}

// Proto returns the owning proto reaction.
func (r *Reaction) Proto() *ProtoReaction { return r.proto }

// Target returns the product nuclide.
func (r *Reaction) Target() nuclide.ZAID { return r.target }

// Parent returns the parent nuclide.
func (r *Reaction) Parent() nuclide.ZAID { return r.proto.parent }

// Typus returns the reaction tag.
func (r *Reaction) Typus() string { return r.proto.typus }

// Nu returns the mean number of emitted neutrons.
func (r *Reaction) Nu() float64 { return r.proto.nu }

// Energy returns the released energy in eV.
func (r *Reaction) Energy() float64 { return r.proto.energy }

// EnergyErr returns the uncertainty of Energy in eV.
func (r *Reaction) EnergyErr() float64 { return r.proto.energyErr }

// Spectra is always empty.
func (r *Reaction) Spectra() []Spectrum { return nil }

// Branching returns the branching ratios of the owning proto reaction.
func (r *Reaction) Branching() map[nuclide.ZAID]float64 { return r.proto.Branching() }

// Branches yields the reaction itself with weight 1.
func (r *Reaction) Branches() iter.Seq2[Concrete, float64] {
	return func(yield func(Concrete, float64) bool) {
		yield(r, 1)
	}
}

// Equal compares proto identity keys and targets.
func (r *Reaction) Equal(other *Reaction) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.target == other.target && r.proto.Equal(other.proto)
}

func (r *Reaction) String() string {
	return r.proto.String() + r.target.String()
}

// SerialTag implements serial.Serializable.
func (r *Reaction) SerialTag() string { return TagReaction }

// Serialize implements serial.Serializable.
func (r *Reaction) Serialize() (serial.Envelope, error) {
	if r == nil {
		return serial.Envelope{}, ErrNilReaction
	}
	proto, err := r.proto.Serialize()
	if err != nil {
		return serial.Envelope{}, err
	}
	return serial.New(TagReaction, serial.Fields{
		"proto":  proto,
		"target": r.target.Encode(),
	}), nil
}
