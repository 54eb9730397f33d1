package reaction

import (
	"fmt"

	"reactcore/pkg/nuclide"
	"reactcore/pkg/serial"
)

// Decoders returns the decode function for every serializable kind in this
// package. Nuclide fields are resolved through catalog and flyweights are
// rebuilt through in, so decoding within one interner lifetime returns the
// original pointers. Nil arguments select the defaults.
func Decoders(in *Interner, catalog nuclide.Catalog) map[string]serial.DecodeFunc {
	if in == nil {
		in = Default()
	}
	if catalog == nil {
		catalog = in.Catalog()
	}
	return map[string]serial.DecodeFunc{
		TagParticle:                   decodeParticle,
		TagReactionCategory:           decodeCategory,
		TagProductionReactionCategory: decodeProductionCategory(catalog),
		TagProtoReaction:              decodeProto(in, catalog),
		TagReaction:                   decodeReaction(in, catalog),
		TagProductionReaction:         decodeProduction(in, catalog),
		TagReactionRate:               decodeRate,
	}
}

// NewRegistry returns a registry holding every kind from Decoders.
func NewRegistry(in *Interner, catalog nuclide.Catalog) (*serial.Registry, error) {
	reg := serial.NewRegistry()
	if err := Register(reg, in, catalog); err != nil {
		return nil, err
	}
	return reg, nil
}

// Register adds the decoders for the named tags to reg. With no tags every
// kind is registered.
func Register(reg *serial.Registry, in *Interner, catalog nuclide.Catalog, tags ...string) error {
	decoders := Decoders(in, catalog)
	if len(tags) == 0 {
		tags = []string{
			TagParticle,
			TagReactionCategory,
			TagProductionReactionCategory,
			TagProtoReaction,
			TagReaction,
			TagProductionReaction,
			TagReactionRate,
		}
	}
	for _, tag := range tags {
		fn, ok := decoders[tag]
		if !ok {
			return &serial.UnsupportedTypeError{Tag: tag}
		}
		if err := reg.Register(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func resolveCode(code int, catalog nuclide.Catalog) (nuclide.ZAID, error) {
	if code < 0 {
		return nuclide.ZAID{}, fmt.Errorf("%w: code %d", nuclide.ErrInvalidNuclide, code)
	}
	id := nuclide.Decode(code)
	return catalog.Resolve(id.Z, id.A, id.State)
}

func resolveField(fields serial.Fields, key string, catalog nuclide.Catalog) (nuclide.ZAID, error) {
	code, err := fields.Int(key)
	if err != nil {
		return nuclide.ZAID{}, err
	}
	id, err := resolveCode(code, catalog)
	if err != nil {
		return nuclide.ZAID{}, fmt.Errorf("field %q: %w", key, err)
	}
	return id, nil
}

func decodeProto(in *Interner, catalog nuclide.Catalog) serial.DecodeFunc {
	return func(fields serial.Fields, _ *serial.Registry) (serial.Serializable, error) {
		proto, err := protoFromFields(fields, in, catalog)
		if err != nil {
			return nil, err
		}
		return proto, nil
	}
}

func protoFromFields(fields serial.Fields, in *Interner, catalog nuclide.Catalog) (*ProtoReaction, error) {
	parent, err := resolveField(fields, "parent", catalog)
	if err != nil {
		return nil, err
	}
	typus, err := fields.String("typus")
	if err != nil {
		return nil, err
	}
	energy, err := fields.FloatOr("energy", 0)
	if err != nil {
		return nil, err
	}
	energyErr, err := fields.FloatOr("energy_err", 0)
	if err != nil {
		return nil, err
	}
	nu, err := fields.FloatOr("nu", 0)
	if err != nil {
		return nil, err
	}
	raw, err := fields.FloatMap("branching")
	if err != nil {
		return nil, err
	}
	branching := make(map[nuclide.ZAID]float64, len(raw))
	for code, w := range raw {
		id, err := nuclide.ParseCode(code)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", "branching", err)
		}
		target, err := catalog.Resolve(id.Z, id.A, id.State)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", "branching", err)
		}
		branching[target] = w
	}
	spectra, err := fields.List("spectra")
	if err != nil {
		return nil, err
	}
	opts := ProtoOptions{Branching: branching, Nu: nu, Energy: energy, EnergyErr: energyErr}
	if len(spectra) > 0 {
		opts.Spectra = make([]Spectrum, len(spectra))
	}
	return in.Proto(parent, typus, opts)
}

func decodeReaction(in *Interner, catalog nuclide.Catalog) serial.DecodeFunc {
	return func(fields serial.Fields, reg *serial.Registry) (serial.Serializable, error) {
		env, err := fields.Envelope("proto")
		if err != nil {
			return nil, err
		}
		decoded, err := reg.Decode(env)
		if err != nil {
			return nil, err
		}
		proto, ok := decoded.(*ProtoReaction)
		if !ok {
			return nil, &serial.FieldError{Key: "proto", Want: TagProtoReaction, Got: decoded}
		}
		target, err := resolveField(fields, "target", catalog)
		if err != nil {
			return nil, err
		}
		r, err := in.Reaction(proto, target)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

func decodeProduction(in *Interner, catalog nuclide.Catalog) serial.DecodeFunc {
	return func(fields serial.Fields, _ *serial.Registry) (serial.Serializable, error) {
		parent, err := resolveField(fields, "parent", catalog)
		if err != nil {
			return nil, err
		}
		target, err := resolveField(fields, "target", catalog)
		if err != nil {
			return nil, err
		}
		typus, err := fields.String("typus")
		if err != nil {
			return nil, err
		}
		return in.Production(parent, target, typus), nil
	}
}

func decodeRate(fields serial.Fields, reg *serial.Registry) (serial.Serializable, error) {
	component, err := fields.String("component")
	if err != nil {
		return nil, err
	}
	env, err := fields.Envelope("reaction")
	if err != nil {
		return nil, err
	}
	decoded, err := reg.Decode(env)
	if err != nil {
		return nil, err
	}
	reaction, ok := decoded.(Type)
	if !ok {
		return nil, &serial.FieldError{Key: "reaction", Want: "reaction", Got: decoded}
	}
	mean, err := fields.Float("mean")
	if err != nil {
		return nil, err
	}
	std, err := fields.Float("std")
	if err != nil {
		return nil, err
	}
	return NewRate(component, reaction, mean, std), nil
}
