// Package reaction models the nuclear reaction catalog: the named particles,
// the static table of reaction categories, the interned reaction entities
// built from them and the measured reaction rates that wrap those entities.
//
// ProtoReaction, Reaction and ProductionReaction values are flyweights. An
// Interner hands out one pointer per identity key, so within one Interner
// a == b implies the pointers are equal. Default returns the process-wide
// Interner used by the package level constructors; tests and long running
// hosts can build their own with NewInterner and drop entries with Reset.
//
// A proto reaction with an empty branching map is a legacy marker for "one
// implicit target". Its Branches yields nothing. Interners built with
// WithBranching(BranchingExplicit) write {target: 1} instead when a category
// has a unique target.
//
// Every entity serializes to a serial.Envelope; NewRegistry returns a
// registry that decodes them back through an Interner.
package reaction
