package reaction

import (
	"fmt"
	"strings"
	"sync"

	"reactcore/pkg/nuclide"
)

// Kind names one intern table.
type Kind string

// Intern table kinds.
const (
	KindProto      Kind = "proto"
	KindReaction   Kind = "reaction"
	KindProduction Kind = "production"
)

// Kinds returns every intern table kind.
func Kinds() []Kind { return []Kind{KindProto, KindReaction, KindProduction} }

// BranchingMode controls how empty branching maps are treated when building
// from a category.
type BranchingMode int

const (
	// BranchingLegacy keeps an empty branching map, which yields no branches.
	BranchingLegacy BranchingMode = iota
	// BranchingExplicit replaces an empty branching map with {target: 1}
	// whenever the category has a unique target.
	BranchingExplicit
)

func (m BranchingMode) String() string {
	switch m {
	case BranchingExplicit:
		return "explicit"
	default:
		return "legacy"
	}
}

// ParseBranchingMode parses "legacy" or "explicit". Empty selects legacy.
func ParseBranchingMode(raw string) (BranchingMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "legacy":
		return BranchingLegacy, nil
	case "explicit":
		return BranchingExplicit, nil
	default:
		return BranchingLegacy, fmt.Errorf("reaction: unknown branching mode %q", raw)
	}
}

// InternObserver receives intern table activity. entries is the table size
// after the insert.
type InternObserver interface {
	Hit(kind Kind)
	Miss(kind Kind, entries int)
}

// table is a get-or-insert map guarded by its own mutex.
type table[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
}

func (t *table[K, V]) getOrInsert(key K, build func() V) (V, bool, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.entries[key]; ok {
		return v, true, len(t.entries)
	}
	if t.entries == nil {
		t.entries = make(map[K]V)
	}
	v := build()
	t.entries[key] = v
	return v, false, len(t.entries)
}

func (t *table[K, V]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *table[K, V]) reset() {
	t.mu.Lock()
	t.entries = nil
	t.mu.Unlock()
}

// Interner owns the flyweight tables for proto reactions, reactions and
// production reactions. Entries are never evicted; Reset is the only way to
// release them.
type Interner struct {
	cfgMu     sync.RWMutex
	branching BranchingMode
	catalog   nuclide.Catalog
	observer  InternObserver

	protos      table[protoKey, *ProtoReaction]
	reactions   table[reactionKey, *Reaction]
	productions table[productionKey, *ProductionReaction]
}

// Option configures an Interner.
type Option func(*Interner)

// WithBranching selects the branching mode.
func WithBranching(mode BranchingMode) Option {
	return func(in *Interner) { in.branching = mode }
}

// WithCatalog sets the nuclide catalog used to compute targets.
func WithCatalog(catalog nuclide.Catalog) Option {
	return func(in *Interner) { in.catalog = catalog }
}

// WithObserver installs an intern observer.
func WithObserver(observer InternObserver) Option {
	return func(in *Interner) { in.observer = observer }
}

// NewInterner constructs an empty interner.
func NewInterner(opts ...Option) *Interner {
	in := &Interner{}
	in.Configure(opts...)
	return in
}

var (
	defaultOnce     sync.Once
	defaultInterner *Interner
)

// Default returns the process-wide interner used by the package level constructors.
func Default() *Interner {
	defaultOnce.Do(func() {
		defaultInterner = NewInterner()
	})
	return defaultInterner
}

// Configure applies options to an existing interner. Existing entries are kept.
func (in *Interner) Configure(opts ...Option) {
	in.cfgMu.Lock()
	defer in.cfgMu.Unlock()
	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}
}

// Branching returns the configured branching mode.
func (in *Interner) Branching() BranchingMode {
	in.cfgMu.RLock()
	defer in.cfgMu.RUnlock()
	return in.branching
}

// Catalog returns the nuclide catalog used for target computation.
func (in *Interner) Catalog() nuclide.Catalog {
	in.cfgMu.RLock()
	catalog := in.catalog
	in.cfgMu.RUnlock()
	if catalog == nil {
		return nuclide.DefaultCatalog()
	}
	return catalog
}

func (in *Interner) record(kind Kind, hit bool, entries int) {
	in.cfgMu.RLock()
	observer := in.observer
	in.cfgMu.RUnlock()
	if observer == nil {
		return
	}
	if hit {
		observer.Hit(kind)
		return
	}
	observer.Miss(kind, entries)
}

// Len returns the number of interned entries of kind.
func (in *Interner) Len(kind Kind) int {
	switch kind {
	case KindProto:
		return in.protos.len()
	case KindReaction:
		return in.reactions.len()
	case KindProduction:
		return in.productions.len()
	default:
		return 0
	}
}

// Reset drops every interned entry. Previously returned pointers stay valid
// but are no longer canonical.
func (in *Interner) Reset() {
	in.protos.reset()
	in.reactions.reset()
	in.productions.reset()
}
