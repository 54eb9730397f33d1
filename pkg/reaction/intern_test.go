package reaction

import (
	"errors"
	"math"
	"sync"
	"testing"

	"reactcore/pkg/nuclide"
)

var (
	h1   = nuclide.New(1, 1, 0)
	h2   = nuclide.New(1, 2, 0)
	u235 = nuclide.New(92, 235, 0)
	u236 = nuclide.New(92, 236, 0)
)

type countingObserver struct {
	mu      sync.Mutex
	hits    map[Kind]int
	misses  map[Kind]int
	entries map[Kind]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{hits: map[Kind]int{}, misses: map[Kind]int{}, entries: map[Kind]int{}}
}

func (o *countingObserver) Hit(kind Kind) {
	o.mu.Lock()
	o.hits[kind]++
	o.mu.Unlock()
}

func (o *countingObserver) Miss(kind Kind, entries int) {
	o.mu.Lock()
	o.misses[kind]++
	o.entries[kind] = entries
	o.mu.Unlock()
}

func TestProtoIdentity(t *testing.T) {
	in := NewInterner()
	opts := ProtoOptions{Branching: map[nuclide.ZAID]float64{h2: 0.4, u236: 0.6}, Nu: 2.4, Energy: 1.9e8, EnergyErr: 1e6}
	a, err := in.Proto(u235, "(n,fission)", opts)
	if err != nil {
		t.Fatalf("proto: %v", err)
	}
	b, err := in.Proto(u235, "(n,fission)", ProtoOptions{Branching: map[nuclide.ZAID]float64{u236: 0.6, h2: 0.4}, Nu: 2.4, Energy: 1.9e8, EnergyErr: 1e6})
	if err != nil {
		t.Fatalf("proto: %v", err)
	}
	if a != b || !a.Equal(b) {
		t.Fatalf("expected the same pointer for equal keys")
	}
	opts.Branching[h2] = 0.9
	if a.Branching()[h2] != 0.4 {
		t.Fatalf("caller map must be copied")
	}
	if in.Len(KindProto) != 1 {
		t.Fatalf("expected one proto entry, got %d", in.Len(KindProto))
	}
}

func TestProtoDifferingKeys(t *testing.T) {
	in := NewInterner()
	base := ProtoOptions{Nu: 1, Energy: 2, EnergyErr: 3, Branching: map[nuclide.ZAID]float64{h2: 1}}
	ref, err := in.Proto(h1, "(n,\\gamma)", base)
	if err != nil {
		t.Fatalf("proto: %v", err)
	}
	variants := []struct {
		name   string
		parent nuclide.ZAID
		typus  string
		opts   ProtoOptions
	}{
		{"parent", h2, "(n,\\gamma)", base},
		{"typus", h1, "(n,p)", base},
		{"nu", h1, "(n,\\gamma)", ProtoOptions{Nu: 1.5, Energy: 2, EnergyErr: 3, Branching: base.Branching}},
		{"energy", h1, "(n,\\gamma)", ProtoOptions{Nu: 1, Energy: 2.5, EnergyErr: 3, Branching: base.Branching}},
		{"energy_err", h1, "(n,\\gamma)", ProtoOptions{Nu: 1, Energy: 2, EnergyErr: 3.5, Branching: base.Branching}},
		{"branching weight", h1, "(n,\\gamma)", ProtoOptions{Nu: 1, Energy: 2, EnergyErr: 3, Branching: map[nuclide.ZAID]float64{h2: 0.5}}},
		{"branching target", h1, "(n,\\gamma)", ProtoOptions{Nu: 1, Energy: 2, EnergyErr: 3, Branching: map[nuclide.ZAID]float64{u236: 1}}},
		{"empty branching", h1, "(n,\\gamma)", ProtoOptions{Nu: 1, Energy: 2, EnergyErr: 3}},
	}
	for _, v := range variants {
		got, err := in.Proto(v.parent, v.typus, v.opts)
		if err != nil {
			t.Fatalf("%s: %v", v.name, err)
		}
		if got == ref || got.Equal(ref) {
			t.Fatalf("%s: expected a distinct proto", v.name)
		}
	}
}

func TestProtoNegativeZeroSharesKey(t *testing.T) {
	in := NewInterner()
	a, _ := in.Proto(h1, "(n,p)", ProtoOptions{Energy: 0})
	b, _ := in.Proto(h1, "(n,p)", ProtoOptions{Energy: math.Copysign(0, -1)})
	if a != b {
		t.Fatalf("expected -0 and 0 to share a key")
	}
}

func TestProtoSpectraRejected(t *testing.T) {
	in := NewInterner()
	_, err := in.Proto(h1, "(n,p)", ProtoOptions{Spectra: []Spectrum{{Name: "watt"}}})
	if !errors.Is(err, ErrSpectraUnsupported) {
		t.Fatalf("expected ErrSpectraUnsupported, got %v", err)
	}
	if in.Len(KindProto) != 0 {
		t.Fatalf("rejected construction must not intern")
	}
	if _, err := in.ProtoFromCategory(h1, NP, ProtoOptions{Spectra: []Spectrum{{}}}); !errors.Is(err, ErrSpectraUnsupported) {
		t.Fatalf("expected ErrSpectraUnsupported from category, got %v", err)
	}
	if _, err := in.ReactionFromCategory(h1, NP, ReactionOptions{Spectra: []Spectrum{{}}}); !errors.Is(err, ErrSpectraUnsupported) {
		t.Fatalf("expected ErrSpectraUnsupported from reaction, got %v", err)
	}
}

func TestProtoFromCategoryIdentity(t *testing.T) {
	in := NewInterner()
	opts := ProtoOptions{Branching: map[nuclide.ZAID]float64{u236: 1}, Nu: 0, Energy: 6.5e6}
	a, err := in.ProtoFromCategory(u235, NGamma, opts)
	if err != nil {
		t.Fatalf("proto: %v", err)
	}
	b, err := in.ProtoFromCategory(u235, NGamma, opts)
	if err != nil {
		t.Fatalf("proto: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical pointers")
	}
	if a.Typus() != NGamma.String() || a.String() != "U235(n,\\gamma)" {
		t.Fatalf("unexpected proto %s", a)
	}
}

func TestConcurrentInterning(t *testing.T) {
	in := NewInterner()
	const workers = 32
	protos := make([]*ProtoReaction, workers)
	reactions := make([]*Reaction, workers)
	productions := make([]*ProductionReaction, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := in.ProtoFromCategory(u235, N2N, ProtoOptions{Nu: 2})
			if err != nil {
				t.Errorf("proto: %v", err)
				return
			}
			r, err := in.ReactionFromCategory(u235, N2N, ReactionOptions{Nu: 2})
			if err != nil {
				t.Errorf("reaction: %v", err)
				return
			}
			protos[i] = p
			reactions[i] = r
			productions[i] = in.ProductionFromCategory(u235, NNTot)
		}(i)
	}
	wg.Wait()
	for i := 1; i < workers; i++ {
		if protos[i] != protos[0] || reactions[i] != reactions[0] || productions[i] != productions[0] {
			t.Fatalf("worker %d observed a different instance", i)
		}
	}
	if in.Len(KindProto) != 1 || in.Len(KindReaction) != 1 || in.Len(KindProduction) != 1 {
		t.Fatalf("unexpected table sizes %d %d %d", in.Len(KindProto), in.Len(KindReaction), in.Len(KindProduction))
	}
}

func TestInternerObserverAndReset(t *testing.T) {
	obs := newCountingObserver()
	in := NewInterner(WithObserver(obs))
	p1, _ := in.Proto(h1, "(n,p)", ProtoOptions{})
	_, _ = in.Proto(h1, "(n,p)", ProtoOptions{})
	_ = in.Production(h1, h2, "(n,xd)")
	if obs.misses[KindProto] != 1 || obs.hits[KindProto] != 1 || obs.misses[KindProduction] != 1 {
		t.Fatalf("unexpected observer counts hits=%v misses=%v", obs.hits, obs.misses)
	}
	if obs.entries[KindProto] != 1 {
		t.Fatalf("expected entries gauge 1, got %d", obs.entries[KindProto])
	}
	in.Reset()
	for _, k := range Kinds() {
		if in.Len(k) != 0 {
			t.Fatalf("expected empty %s table after reset", k)
		}
	}
	p2, _ := in.Proto(h1, "(n,p)", ProtoOptions{})
	if p1 == p2 {
		t.Fatalf("reset must drop canonical instances")
	}
	if !p1.Equal(p2) {
		t.Fatalf("structurally equal instances compare equal across resets")
	}
	if in.Len("unknown") != 0 {
		t.Fatalf("unknown kinds report zero")
	}
}

func TestSeparateInternersAreIndependent(t *testing.T) {
	a, _ := NewInterner().Proto(h1, "(n,p)", ProtoOptions{})
	b, _ := NewInterner().Proto(h1, "(n,p)", ProtoOptions{})
	if a == b {
		t.Fatalf("interners must not share entries")
	}
	if !a.Equal(b) {
		t.Fatalf("equal keys compare equal across interners")
	}
}

func TestDefaultInterner(t *testing.T) {
	if Default() != Default() {
		t.Fatalf("expected one default interner")
	}
	a, err := ProtoFromCategory(nuclide.New(3, 6, 0), NAlpha, ProtoOptions{Nu: 0.5})
	if err != nil {
		t.Fatalf("proto: %v", err)
	}
	b, err := NewProto(nuclide.New(3, 6, 0), string(TypusNAlpha), ProtoOptions{Nu: 0.5})
	if err != nil {
		t.Fatalf("proto: %v", err)
	}
	if a != b {
		t.Fatalf("package constructors must share the default interner")
	}
}

func TestParseBranchingMode(t *testing.T) {
	cases := map[string]BranchingMode{"": BranchingLegacy, "legacy": BranchingLegacy, " Explicit ": BranchingExplicit}
	for raw, want := range cases {
		got, err := ParseBranchingMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseBranchingMode(%q) = %v, %v", raw, got, err)
		}
	}
	if _, err := ParseBranchingMode("implicit"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if BranchingExplicit.String() != "explicit" || BranchingLegacy.String() != "legacy" {
		t.Fatalf("unexpected mode names")
	}
}
