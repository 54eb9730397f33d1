package reaction

import (
	"fmt"

	"reactcore/pkg/serial"
)

// TagParticle is the envelope tag for particles.
const TagParticle = "Particle"

// Particle is an immutable description of an inducing or released particle.
// Equality covers charge, mass, name and symbol, including whether a symbol
// was supplied at all.
type Particle struct {
	charge    int
	mass      int
	name      string
	symbol    string
	hasSymbol bool
}

// NewParticle returns a particle rendered by its name.
func NewParticle(charge, mass int, name string) Particle {
	return Particle{charge: charge, mass: mass, name: name}
}

// NewParticleWithSymbol returns a particle with a display symbol.
func NewParticleWithSymbol(charge, mass int, name, symbol string) Particle {
	return Particle{charge: charge, mass: mass, name: name, symbol: symbol, hasSymbol: true}
}

// Named particles.
var (
	Photon   = NewParticleWithSymbol(0, 0, "photon", `$\gamma$`)
	Neutron  = NewParticleWithSymbol(0, 1, "neutron", "n")
	Proton   = NewParticleWithSymbol(1, 1, "proton", "p")
	Deutron  = NewParticleWithSymbol(1, 2, "Deutron", "d")
	Triton   = NewParticleWithSymbol(1, 3, "triton", "t")
	Electron = NewParticleWithSymbol(-1, 0, "electron", `$e^-$`)
	Positron = NewParticleWithSymbol(1, 0, "positron", `$e^+$`)
	He3      = NewParticleWithSymbol(2, 3, "helium-3", `$^{3}He$`)
	Alpha    = NewParticleWithSymbol(2, 4, "alpha", `$\alpha$`)
)

// NamedParticles returns the nine named particles in declaration order.
func NamedParticles() []Particle {
	return []Particle{Photon, Neutron, Proton, Deutron, Triton, Electron, Positron, He3, Alpha}
}

// Charge returns the particle charge in elementary charges.
func (p Particle) Charge() int { return p.charge }

// Mass returns the particle mass number.
func (p Particle) Mass() int { return p.mass }

// Name returns the particle name.
func (p Particle) Name() string { return p.name }

// Symbol returns the display symbol, if one was supplied.
func (p Particle) Symbol() (string, bool) { return p.symbol, p.hasSymbol }

func (p Particle) String() string {
	if p.symbol != "" {
		return p.symbol
	}
	return p.name
}

func (p Particle) less(other Particle) bool {
	if p.mass != other.mass {
		return p.mass < other.mass
	}
	if p.charge != other.charge {
		return p.charge < other.charge
	}
	if p.name != other.name {
		return p.name < other.name
	}
	if p.symbol != other.symbol {
		return p.symbol < other.symbol
	}
	return !p.hasSymbol && other.hasSymbol
}

// SerialTag implements serial.Serializable.
func (p Particle) SerialTag() string { return TagParticle }

// Serialize implements serial.Serializable.
func (p Particle) Serialize() (serial.Envelope, error) {
	var sign any
	if p.hasSymbol {
		sign = p.symbol
	}
	return serial.New(TagParticle, serial.Fields{
		"charge": p.charge,
		"mass":   p.mass,
		"name":   p.name,
		"sign":   sign,
	}), nil
}

func decodeParticle(fields serial.Fields, _ *serial.Registry) (serial.Serializable, error) {
	charge, err := fields.Int("charge")
	if err != nil {
		return nil, err
	}
	mass, err := fields.Int("mass")
	if err != nil {
		return nil, err
	}
	name, err := fields.String("name")
	if err != nil {
		return nil, err
	}
	sign, ok, err := fields.OptionalString("sign")
	if err != nil {
		return nil, err
	}
	if ok {
		return NewParticleWithSymbol(charge, mass, name, sign), nil
	}
	return NewParticle(charge, mass, name), nil
}

func particleFrom(v serial.Serializable) (Particle, error) {
	p, ok := v.(Particle)
	if !ok {
		return Particle{}, fmt.Errorf("reaction: expected %s, got %s", TagParticle, v.SerialTag())
	}
	return p, nil
}
