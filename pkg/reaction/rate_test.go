package reaction

import (
	"errors"
	"slices"
	"testing"

	"reactcore/pkg/nuclide"
)

func TestRateExpand(t *testing.T) {
	in := NewInterner()
	a, b := nuclide.New(36, 92, 0), nuclide.New(56, 141, 0)
	proto, err := in.Proto(u235, "(n,fission)", ProtoOptions{Branching: map[nuclide.ZAID]float64{a: 0.3, b: 0.7}})
	if err != nil {
		t.Fatalf("proto: %v", err)
	}
	rate := NewRate("fuel", proto, 10, 1)
	expanded := slices.Collect(rate.Expand())
	if len(expanded) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(expanded))
	}
	ra, _ := in.Reaction(proto, a)
	rb, _ := in.Reaction(proto, b)
	want := []Rate{NewRate("fuel", ra, 3, 0.3), NewRate("fuel", rb, 7, 0.7)}
	for i := range want {
		if !expanded[i].Equal(want[i]) {
			t.Fatalf("rate %d: got %v, want %v", i, expanded[i], want[i])
		}
	}
	if target, err := expanded[1].Target(); err != nil || target != b {
		t.Fatalf("expanded target: %v %v", target, err)
	}
}

func TestRateExpandLegacyAndConcrete(t *testing.T) {
	in := NewInterner()
	proto, _ := in.ProtoFromCategory(h1, NGamma, ProtoOptions{})
	if n := len(slices.Collect(NewRate("c", proto, 1, 1).Expand())); n != 0 {
		t.Fatalf("legacy proto must expand to nothing, got %d", n)
	}
	r, _ := in.Reaction(proto, h2)
	out := slices.Collect(NewRate("c", r, 4, 2).Expand())
	if len(out) != 1 || !out[0].Equal(NewRate("c", r, 4, 2)) {
		t.Fatalf("concrete reaction expands to itself, got %v", out)
	}
	if n := len(slices.Collect(Rate{Component: "c"}.Expand())); n != 0 {
		t.Fatalf("nil reaction expands to nothing")
	}
}

func TestRateScaling(t *testing.T) {
	in := NewInterner()
	p := in.Production(h1, h2, "(n,xd)")
	rate := NewRate("blanket", p, 2, 0.5)
	scaled := rate.Scale(3)
	if scaled.Mean != 6 || scaled.Std != 1.5 || scaled.Component != "blanket" || scaled.Reaction != Type(p) {
		t.Fatalf("unexpected scaled rate %v", scaled)
	}
	numeric := []any{
		3.0, float32(3),
		3, int8(3), int16(3), int32(3), int64(3),
		uint(3), uint8(3), uint16(3), uint32(3), uint64(3), uintptr(3),
	}
	for _, v := range numeric {
		got, err := rate.Mul(v)
		if err != nil || !got.Equal(scaled) {
			t.Fatalf("Mul(%T): %v %v", v, got, err)
		}
	}
	for _, v := range []any{"3", nil, true, rate} {
		if _, err := rate.Mul(v); !errors.Is(err, ErrNonNumericScale) {
			t.Fatalf("Mul(%T): expected ErrNonNumericScale, got %v", v, err)
		}
	}
	from := RateFrom(rate, 9, 1)
	if from.Component != rate.Component || from.Reaction != rate.Reaction || from.Mean != 9 {
		t.Fatalf("unexpected RateFrom result %v", from)
	}
}

func TestRateEqualityTolerance(t *testing.T) {
	in := NewInterner()
	p := in.Production(h1, h2, "(n,xd)")
	base := NewRate("c", p, 1.0, 0.1)
	if !base.Equal(NewRate("c", p, 1.0+1e-12, 0.1)) {
		t.Fatalf("relative differences below 1e-10 compare equal")
	}
	if base.Equal(NewRate("c", p, 1.0+1e-8, 0.1)) {
		t.Fatalf("relative differences above 1e-10 differ")
	}
	if !NewRate("c", p, 0, 0).Equal(NewRate("c", p, 5e-15, 0)) {
		t.Fatalf("absolute differences below 1e-14 compare equal")
	}
	if base.Equal(NewRate("d", p, 1.0, 0.1)) {
		t.Fatalf("component takes part in equality")
	}
	other := in.Production(h1, h2, "(n,xp)")
	if base.Equal(NewRate("c", other, 1.0, 0.1)) {
		t.Fatalf("reaction takes part in equality")
	}
	fresh := NewInterner().Production(h1, h2, "(n,xd)")
	if !base.Equal(NewRate("c", fresh, 1.0, 0.1)) {
		t.Fatalf("reactions compare by identity key, not pointer")
	}
}

func TestRateAccessors(t *testing.T) {
	in := NewInterner()
	proto, _ := in.Proto(u235, "(n,fission)", ProtoOptions{Nu: 2.4, Energy: 2e8, Branching: map[nuclide.ZAID]float64{u236: 1}})
	rate := NewRate("fuel", proto, 5, 1)
	if rate.Parent() != u235 || rate.Typus() != "(n,fission)" || rate.Nu() != 2.4 || rate.Energy() != 2e8 || rate.Rate() != 5 {
		t.Fatalf("unexpected accessors for %v", rate)
	}
	if rate.Branching()[u236] != 1 {
		t.Fatalf("unexpected branching %v", rate.Branching())
	}
	if _, err := rate.Target(); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("proto rates have no target, got %v", err)
	}
	prod := NewRate("fuel", in.Production(u235, h1, "(n,xp)"), 1, 0)
	if prod.Energy() != 0 {
		t.Fatalf("production rates report zero energy")
	}
	empty := Rate{}
	if empty.Energy() != 0 || empty.Nu() != 0 || empty.Typus() != "" || empty.Parent() != (nuclide.ZAID{}) || len(empty.Branching()) != 0 {
		t.Fatalf("zero rate accessors must not panic")
	}
	if _, err := empty.Target(); !errors.Is(err, ErrNoTarget) {
		t.Fatalf("zero rate has no target")
	}
}
