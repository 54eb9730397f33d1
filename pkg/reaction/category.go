package reaction

import (
	"fmt"
	"regexp"
	"sort"

	"reactcore/pkg/nuclide"
	"reactcore/pkg/serial"
)

// Envelope tags for categories.
const (
	TagReactionCategory           = "ReactionCategory"
	TagProductionReactionCategory = "ProductionReactionCategory"
)

// ParticleCount is one entry of a released particle multiset.
type ParticleCount struct {
	Particle Particle
	Count    int
}

// ReactionCategory is an abstract reaction pattern that is independent of the
// parent nuclide. Equality uses the tag and the target state only; the
// released particles do not take part in identity.
type ReactionCategory struct {
	name        string
	typus       Typus
	releases    []ParticleCount
	targetState int
}

// CategoryKey is the comparable identity of a ReactionCategory.
type CategoryKey struct {
	Typus       Typus
	TargetState int
}

// NewReactionCategory builds a category from its released particles. Repeated
// particles are counted.
func NewReactionCategory(typus Typus, releases []Particle, targetState int) ReactionCategory {
	counts := make(map[Particle]int, len(releases))
	for _, p := range releases {
		counts[p]++
	}
	return ReactionCategory{typus: typus, releases: countsToSlice(counts), targetState: targetState}
}

func countsToSlice(counts map[Particle]int) []ParticleCount {
	out := make([]ParticleCount, 0, len(counts))
	for p, n := range counts {
		if n <= 0 {
			continue
		}
		out = append(out, ParticleCount{Particle: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Particle.less(out[j].Particle) })
	return out
}

// Name returns the catalog name of the category, empty for ad hoc categories.
func (c ReactionCategory) Name() string { return c.name }

// Typus returns the category tag.
func (c ReactionCategory) Typus() Typus { return c.typus }

// TargetState returns the excitation state of the reaction product.
func (c ReactionCategory) TargetState() int { return c.targetState }

// Releases returns a copy of the released particle multiset.
func (c ReactionCategory) Releases() []ParticleCount {
	return append([]ParticleCount(nil), c.releases...)
}

// Key returns the identity used for equality and map lookups.
func (c ReactionCategory) Key() CategoryKey {
	return CategoryKey{Typus: c.typus, TargetState: c.targetState}
}

// Equal compares tag and target state.
func (c ReactionCategory) Equal(other ReactionCategory) bool {
	return c.Key() == other.Key()
}

func (c ReactionCategory) String() string { return string(c.typus) }

// IsFission reports whether the category describes fission.
func (c ReactionCategory) IsFission() bool { return c.typus == TypusNFission }

var (
	inducePattern = regexp.MustCompile(`^\(([\\\w]+),.*\)`)
	inducers      = map[string]Particle{
		"n":      Neutron,
		"p":      Proton,
		`\gamma`: Photon,
	}
)

// InducedBy parses the inducing particle from the category tag.
func (c ReactionCategory) InducedBy() (Particle, error) {
	m := inducePattern.FindStringSubmatch(string(c.typus))
	if m == nil {
		return Particle{}, &UnsupportedCategoryError{Typus: string(c.typus)}
	}
	p, ok := inducers[m[1]]
	if !ok {
		return Particle{}, &UnsupportedCategoryError{Typus: string(c.typus), Symbol: m[1]}
	}
	return p, nil
}

// CalcTarget returns the product of applying the category to parent, using
// conservation of charge and mass and resolving the result through catalog.
// A nil catalog selects nuclide.DefaultCatalog.
func (c ReactionCategory) CalcTarget(parent nuclide.ZAID, catalog nuclide.Catalog) (nuclide.ZAID, error) {
	if c.IsFission() {
		return nuclide.ZAID{}, fmt.Errorf("%w: %s on %s", ErrFissionTarget, c.typus, parent)
	}
	inducer, err := c.InducedBy()
	if err != nil {
		return nuclide.ZAID{}, err
	}
	z := parent.Z + inducer.charge
	a := parent.A + inducer.mass
	for _, rel := range c.releases {
		z -= rel.Count * rel.Particle.charge
		a -= rel.Count * rel.Particle.mass
	}
	if catalog == nil {
		catalog = nuclide.DefaultCatalog()
	}
	target, err := catalog.Resolve(z, a, c.targetState)
	if err != nil {
		return nuclide.ZAID{}, fmt.Errorf("%s on %s: %w", c.typus, parent, err)
	}
	return target, nil
}

// CalcTargetDefault is CalcTarget against the default nuclide catalog.
func (c ReactionCategory) CalcTargetDefault(parent nuclide.ZAID) (nuclide.ZAID, error) {
	return c.CalcTarget(parent, nil)
}

// SerialTag implements serial.Serializable.
func (c ReactionCategory) SerialTag() string { return TagReactionCategory }

// Serialize implements serial.Serializable.
func (c ReactionCategory) Serialize() (serial.Envelope, error) {
	releases := make([]any, 0, len(c.releases))
	for _, rel := range c.releases {
		env, err := rel.Particle.Serialize()
		if err != nil {
			return serial.Envelope{}, err
		}
		releases = append(releases, []any{env, rel.Count})
	}
	return serial.New(TagReactionCategory, serial.Fields{
		"typus":        string(c.typus),
		"releases":     releases,
		"target_state": c.targetState,
	}), nil
}

func decodeCategory(fields serial.Fields, reg *serial.Registry) (serial.Serializable, error) {
	typus, err := fields.String("typus")
	if err != nil {
		return nil, err
	}
	state, err := fields.Int("target_state")
	if err != nil {
		return nil, err
	}
	raw, err := fields.List("releases")
	if err != nil {
		return nil, err
	}
	counts := make(map[Particle]int, len(raw))
	for i, item := range raw {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return nil, &serial.FieldError{Key: fmt.Sprintf("releases[%d]", i), Want: "[particle, count]", Got: item}
		}
		decoded, err := reg.Decode(pair[0])
		if err != nil {
			return nil, err
		}
		p, err := particleFrom(decoded)
		if err != nil {
			return nil, err
		}
		n, err := serial.Fields{"count": pair[1]}.Int("count")
		if err != nil {
			return nil, err
		}
		counts[p] += n
	}
	cat := ReactionCategory{typus: Typus(typus), releases: countsToSlice(counts), targetState: state}
	if known, ok := categoryByKey[cat.Key()]; ok {
		cat.name = known.name
	}
	return cat, nil
}

// ProductionReactionCategory describes all reactions producing one nuclide.
type ProductionReactionCategory struct {
	name     string
	produces nuclide.ZAID
	typus    ProdTypus
}

// NewProductionCategory builds an ad hoc production category.
func NewProductionCategory(produces nuclide.ZAID, typus ProdTypus) ProductionReactionCategory {
	return ProductionReactionCategory{produces: produces, typus: typus}
}

// Name returns the catalog name of the category, empty for ad hoc categories.
func (c ProductionReactionCategory) Name() string { return c.name }

// Produces returns the produced nuclide.
func (c ProductionReactionCategory) Produces() nuclide.ZAID { return c.produces }

// Typus returns the category tag.
func (c ProductionReactionCategory) Typus() ProdTypus { return c.typus }

// Equal compares produced nuclide and tag.
func (c ProductionReactionCategory) Equal(other ProductionReactionCategory) bool {
	return c.produces == other.produces && c.typus == other.typus
}

func (c ProductionReactionCategory) String() string { return string(c.typus) }

// SerialTag implements serial.Serializable.
func (c ProductionReactionCategory) SerialTag() string { return TagProductionReactionCategory }

// Serialize implements serial.Serializable.
func (c ProductionReactionCategory) Serialize() (serial.Envelope, error) {
	return serial.New(TagProductionReactionCategory, serial.Fields{
		"produces": c.produces.Encode(),
		"typus":    string(c.typus),
	}), nil
}

func decodeProductionCategory(catalog nuclide.Catalog) serial.DecodeFunc {
	return func(fields serial.Fields, _ *serial.Registry) (serial.Serializable, error) {
		produces, err := resolveField(fields, "produces", catalog)
		if err != nil {
			return nil, err
		}
		typus, err := fields.String("typus")
		if err != nil {
			return nil, err
		}
		cat := NewProductionCategory(produces, ProdTypus(typus))
		for _, known := range productionCatalog {
			if known.Equal(cat) {
				return known, nil
			}
		}
		return cat, nil
	}
}
