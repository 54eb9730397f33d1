package nuclide

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidNuclide is returned for triples that cannot name any nuclide.
	ErrInvalidNuclide = errors.New("nuclide: invalid identifier")
	// ErrUnknownNuclide is returned when the catalog has no entry and fallback is disabled.
	ErrUnknownNuclide = errors.New("nuclide: unknown identifier")
)

// Catalog resolves (Z, A, state) triples to canonical identifiers.
type Catalog interface {
	Resolve(z, a, state int) (ZAID, error)
}

// Table is the default in-process Catalog. Unknown but valid triples resolve
// to a placeholder identifier when Fallback is enabled.
type Table struct {
	mu           sync.RWMutex
	known        map[ZAID]struct{}
	fallback     bool
	placeholders map[ZAID]struct{}
}

// NewTable returns a catalog seeded with the supplied nuclides.
func NewTable(fallback bool, known ...ZAID) *Table {
	t := &Table{
		known:        make(map[ZAID]struct{}, len(known)),
		fallback:     fallback,
		placeholders: make(map[ZAID]struct{}),
	}
	for _, z := range known {
		t.known[z] = struct{}{}
	}
	return t
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultCatalog returns the process-wide catalog. It starts empty with
// fallback enabled, so every valid triple resolves.
func DefaultCatalog() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable(true)
	})
	return defaultTable
}

// Add registers canonical nuclides. Invalid identifiers are rejected.
func (t *Table) Add(ids ...ZAID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		if !id.Valid() {
			return fmt.Errorf("%w: %+v", ErrInvalidNuclide, id)
		}
		t.known[id] = struct{}{}
		delete(t.placeholders, id)
	}
	return nil
}

// SetFallback toggles placeholder construction for unknown triples.
func (t *Table) SetFallback(enabled bool) {
	t.mu.Lock()
	t.fallback = enabled
	t.mu.Unlock()
}

// Resolve implements Catalog.
func (t *Table) Resolve(z, a, state int) (ZAID, error) {
	id := ZAID{Z: z, A: a, State: state}
	if err := id.Validate(); err != nil {
		return ZAID{}, err
	}
	t.mu.RLock()
	_, ok := t.known[id]
	fallback := t.fallback
	t.mu.RUnlock()
	if ok {
		return id, nil
	}
	if !fallback {
		return ZAID{}, fmt.Errorf("%w: %s", ErrUnknownNuclide, id)
	}
	t.mu.Lock()
	if _, seen := t.placeholders[id]; !seen {
		t.placeholders[id] = struct{}{}
		log.Debug().Str("nuclide", id.String()).Int("zaid", id.Encode()).Msg("nuclide placeholder")
	}
	t.mu.Unlock()
	return id, nil
}

// Known reports whether id has a canonical entry.
func (t *Table) Known(id ZAID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.known[id]
	return ok
}

// Placeholders returns the identifiers resolved through fallback, sorted.
func (t *Table) Placeholders() []ZAID {
	t.mu.RLock()
	out := make([]ZAID, 0, len(t.placeholders))
	for id := range t.placeholders {
		out = append(out, id)
	}
	t.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

type fileEntry struct {
	Z     int `toml:"z"`
	A     int `toml:"a"`
	State int `toml:"state"`
}

type fileCatalog struct {
	Fallback bool        `toml:"fallback"`
	Nuclides []fileEntry `toml:"nuclide"`
}

// LoadTOML builds a Table from a file of [[nuclide]] entries. Fallback stays
// enabled unless the file sets fallback = false.
func LoadTOML(path string) (*Table, error) {
	var raw fileCatalog
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load nuclide catalog: %w", err)
	}
	fallback := true
	if meta.IsDefined("fallback") {
		fallback = raw.Fallback
	}
	t := NewTable(fallback)
	for i, e := range raw.Nuclides {
		if err := t.Add(ZAID{Z: e.Z, A: e.A, State: e.State}); err != nil {
			return nil, fmt.Errorf("nuclide[%d]: %w", i, err)
		}
	}
	return t, nil
}
