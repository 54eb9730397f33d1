// Package nuclide defines the nuclide identifier consumed by the reaction
// catalog and the catalog contract used to resolve computed (Z, A, state)
// triples back to canonical identifiers.
package nuclide

import (
	"fmt"
	"strconv"
)

// Bounds of the integer encoding. Identifiers outside them would collide.
const (
	MaxState = 9
	MaxMass  = 999
)

// ZAID identifies a nuclide by charge number, mass number and excitation state.
// It is a plain comparable value and may be used directly as a map key.
type ZAID struct {
	Z     int `json:"z"`
	A     int `json:"a"`
	State int `json:"state"`
}

// New returns the identifier for the supplied triple without catalog resolution.
func New(z, a, state int) ZAID {
	return ZAID{Z: z, A: a, State: state}
}

// Sink is the bookkeeping nuclide used as an explicit absorption target.
var Sink = ZAID{}

// Valid reports whether the triple has a unique integer encoding. Charge and
// mass are not cross-checked.
func (z ZAID) Valid() bool {
	return z.Z >= 0 && z.A >= 0 && z.A <= MaxMass && z.State >= 0 && z.State <= MaxState
}

// Validate returns an error matching ErrInvalidNuclide when z is not Valid.
func (z ZAID) Validate() error {
	if !z.Valid() {
		return fmt.Errorf("%w: Z=%d A=%d state=%d", ErrInvalidNuclide, z.Z, z.A, z.State)
	}
	return nil
}

// Encode returns the integer form Z*10000 + A*10 + State.
func (z ZAID) Encode() int {
	return z.Z*10000 + z.A*10 + z.State
}

// Decode inverts Encode.
func Decode(code int) ZAID {
	return ZAID{
		Z:     code / 10000,
		A:     (code % 10000) / 10,
		State: code % 10,
	}
}

// ParseCode decodes the string form of an encoded identifier, as used for JSON
// object keys.
func ParseCode(raw string) (ZAID, error) {
	code, err := strconv.Atoi(raw)
	if err != nil {
		return ZAID{}, fmt.Errorf("%w: %q", ErrInvalidNuclide, raw)
	}
	if code < 0 {
		return ZAID{}, fmt.Errorf("%w: %q", ErrInvalidNuclide, raw)
	}
	return Decode(code), nil
}

// Less orders identifiers by Z, then A, then State.
func (z ZAID) Less(other ZAID) bool {
	if z.Z != other.Z {
		return z.Z < other.Z
	}
	if z.A != other.A {
		return z.A < other.A
	}
	return z.State < other.State
}

func (z ZAID) String() string {
	if z == Sink {
		return "sink"
	}
	out := Symbol(z.Z) + strconv.Itoa(z.A)
	if z.State > 0 {
		out += "m" + strconv.Itoa(z.State)
	}
	return out
}
