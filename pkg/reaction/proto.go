package reaction

import (
	"fmt"
	"iter"
	"math"
	"sort"
	"strconv"
	"strings"

	"reactcore/pkg/nuclide"
	"reactcore/pkg/serial"
)

// TagProtoReaction is the envelope tag for proto reactions.
const TagProtoReaction = "ProtoReaction"

// Spectrum is reserved for emitted particle spectra. Building a proto
// reaction with spectra is rejected with ErrSpectraUnsupported.
type Spectrum struct {
	Name string
}

// ProtoOptions carries the optional attributes of a proto reaction.
type ProtoOptions struct {
	Branching map[nuclide.ZAID]float64
	Spectra   []Spectrum
	Nu        float64
	Energy    float64
	EnergyErr float64
}

type protoKey struct {
	parent    nuclide.ZAID
	typus     string
	energy    uint64
	energyErr uint64
	nu        uint64
	branching string
}

func floatKey(f float64) uint64 {
	if f == 0 {
		f = 0
	}
	return math.Float64bits(f)
}

func branchingKey(targets []nuclide.ZAID, weights map[nuclide.ZAID]float64) string {
	var b strings.Builder
	for _, t := range targets {
		b.WriteString(strconv.Itoa(t.Z))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(t.A))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(t.State))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(floatKey(weights[t]), 16))
		b.WriteByte(';')
	}
	return b.String()
}

func sortedTargets(weights map[nuclide.ZAID]float64) []nuclide.ZAID {
	out := make([]nuclide.ZAID, 0, len(weights))
	for t := range weights {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// ProtoReaction is an induced reaction that may not resolve to a single
// target. Instances are interned: equal identity keys give the same pointer
// within one Interner.
type ProtoReaction struct {
	key       protoKey
	interner  *Interner
	parent    nuclide.ZAID
	typus     string
	energy    float64
	energyErr float64
	nu        float64
	branching map[nuclide.ZAID]float64
	targets   []nuclide.ZAID
}

// Proto returns the interned proto reaction for the supplied attributes.
func (in *Interner) Proto(parent nuclide.ZAID, typus string, opts ProtoOptions) (*ProtoReaction, error) {
	if len(opts.Spectra) > 0 {
		return nil, fmt.Errorf("%w: %d spectra for %s%s", ErrSpectraUnsupported, len(opts.Spectra), parent, typus)
	}
	if err := parent.Validate(); err != nil {
		return nil, fmt.Errorf("parent: %w", err)
	}
	weights := make(map[nuclide.ZAID]float64, len(opts.Branching))
	for t, w := range opts.Branching {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("branching: %w", err)
		}
		weights[t] = w
	}
	targets := sortedTargets(weights)
	key := protoKey{
		parent:    parent,
		typus:     typus,
		energy:    floatKey(opts.Energy),
		energyErr: floatKey(opts.EnergyErr),
		nu:        floatKey(opts.Nu),
		branching: branchingKey(targets, weights),
	}
	p, hit, n := in.protos.getOrInsert(key, func() *ProtoReaction {
		return &ProtoReaction{
			key:       key,
			interner:  in,
			parent:    parent,
			typus:     typus,
			energy:    opts.Energy,
			energyErr: opts.EnergyErr,
			nu:        opts.Nu,
			branching: weights,
			targets:   targets,
		}
	})
	in.record(KindProto, hit, n)
	return p, nil
}

// ProtoFromCategory builds a proto reaction whose tag is the category tag.
// In BranchingExplicit mode an empty branching map becomes {target: 1} when
// the category has a unique target.
func (in *Interner) ProtoFromCategory(parent nuclide.ZAID, category ReactionCategory, opts ProtoOptions) (*ProtoReaction, error) {
	if len(opts.Spectra) > 0 {
		return nil, fmt.Errorf("%w: %d spectra for %s%s", ErrSpectraUnsupported, len(opts.Spectra), parent, category)
	}
	if len(opts.Branching) == 0 && in.Branching() == BranchingExplicit && !category.IsFission() {
		if target, err := category.CalcTarget(parent, in.Catalog()); err == nil {
			opts.Branching = map[nuclide.ZAID]float64{target: 1}
		}
	}
	return in.Proto(parent, category.String(), opts)
}

// NewProto builds a proto reaction in the default interner.
func NewProto(parent nuclide.ZAID, typus string, opts ProtoOptions) (*ProtoReaction, error) {
	return Default().Proto(parent, typus, opts)
}

// ProtoFromCategory builds a proto reaction from a category in the default interner.
func ProtoFromCategory(parent nuclide.ZAID, category ReactionCategory, opts ProtoOptions) (*ProtoReaction, error) {
	return Default().ProtoFromCategory(parent, category, opts)
}

// Parent returns the parent nuclide.
func (p *ProtoReaction) Parent() nuclide.ZAID { return p.parent }

// Typus returns the reaction tag.
func (p *ProtoReaction) Typus() string { return p.typus }

// Nu returns the mean number of emitted neutrons.
func (p *ProtoReaction) Nu() float64 { return p.nu }

// Energy returns the released energy in eV.
func (p *ProtoReaction) Energy() float64 { return p.energy }

// EnergyErr returns the uncertainty of Energy in eV.
func (p *ProtoReaction) EnergyErr() float64 { return p.energyErr }

// Spectra is always empty.
func (p *ProtoReaction) Spectra() []Spectrum { return nil }

// Branching returns a copy of the branching ratios keyed by target.
func (p *ProtoReaction) Branching() map[nuclide.ZAID]float64 {
	out := make(map[nuclide.ZAID]float64, len(p.branching))
	for t, w := range p.branching {
		out[t] = w
	}
	return out
}

// Branches yields one (reaction, weight) pair per branching entry, ordered by
// target. An empty branching map yields nothing.
func (p *ProtoReaction) Branches() iter.Seq2[Concrete, float64] {
	return func(yield func(Concrete, float64) bool) {
		for _, target := range p.targets {
			if !yield(p.interner.reaction(p, target), p.branching[target]) {
				return
			}
		}
	}
}

// Equal compares identity keys.
func (p *ProtoReaction) Equal(other *ProtoReaction) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.key == other.key
}

func (p *ProtoReaction) String() string {
	return p.parent.String() + p.typus
}

// GoString renders every attribute.
func (p *ProtoReaction) GoString() string {
	parts := make([]string, 0, len(p.targets))
	for _, t := range p.targets {
		parts = append(parts, fmt.Sprintf("%s:%g", t, p.branching[t]))
	}
	return fmt.Sprintf("%s: energy=%g, energy_err=%g, nu=%g, branching={%s}, spectra=[]",
		p, p.energy, p.energyErr, p.nu, strings.Join(parts, ", "))
}

// SerialTag implements serial.Serializable.
func (p *ProtoReaction) SerialTag() string { return TagProtoReaction }

// Serialize implements serial.Serializable.
func (p *ProtoReaction) Serialize() (serial.Envelope, error) {
	if p == nil {
		return serial.Envelope{}, ErrNilReaction
	}
	branching := make(map[string]any, len(p.branching))
	for t, w := range p.branching {
		branching[strconv.Itoa(t.Encode())] = w
	}
	return serial.New(TagProtoReaction, serial.Fields{
		"parent":     p.parent.Encode(),
		"typus":      p.typus,
		"energy":     p.energy,
		"energy_err": p.energyErr,
		"nu":         p.nu,
		"branching":  branching,
		"spectra":    []any{},
	}), nil
}
