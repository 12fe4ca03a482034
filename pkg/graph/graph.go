package graph

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Graph is a built dependency graph: the flat unit and object arrays the
// engine iterates, plus the entry set seeded by external tagging.
//
// The structure (edges, ownership) is immutable once built. The engine owns
// the transient flags and visit states; callers own tagging between passes.
// Concurrent mutation while a flush runs is not supported.
type Graph struct {
	// Units is the flat array of all computation units.
	Units []*Unit

	// Objects is the flat array of all object nodes.
	Objects []*ObjectNode

	// UseShadowCopy enables shadow-copy re-tagging during flush.
	UseShadowCopy bool

	// entries is the set of externally tagged units, unique by identity.
	entries mapset.Set[*Unit]

	// Name indexes maintained by Builder as nodes are declared.
	unitsByName   map[string]*Unit
	objectsByName map[string]*ObjectNode
}

// New returns an empty graph. Most callers build graphs through Builder.
func New() *Graph {
	return &Graph{
		entries:       mapset.NewThreadUnsafeSet[*Unit](),
		unitsByName:   make(map[string]*Unit),
		objectsByName: make(map[string]*ObjectNode),
	}
}

// Tag records an external modification of u: the unit is marked directly
// modified and added to the entry set picked up by the next flush pass.
// Tagging the same unit twice is a no-op.
func (g *Graph) Tag(u *Unit) {
	if u == nil {
		return
	}
	u.Flags |= FlagDirectlyModified
	g.entries.Add(u)
}

// Entries returns the current entry set. The engine reads it when seeding a
// flush pass; ClearEntries drains it at cycle boundaries.
func (g *Graph) Entries() mapset.Set[*Unit] {
	return g.entries
}

// ClearEntries drains the entry set.
func (g *Graph) ClearEntries() {
	g.entries.Clear()
}

// FindUnit returns the unit with the given name, or nil.
func (g *Graph) FindUnit(name string) *Unit {
	return g.unitsByName[name]
}

// FindObject returns the object node with the given name, or nil.
func (g *Graph) FindObject(name string) *ObjectNode {
	return g.objectsByName[name]
}
