// Package graph defines the dependency-graph data model consumed by the
// flush engine.
//
// # Core Domain Types
//
//   - Unit: the smallest schedulable computation, with an opcode tag,
//     persistent dirty flags, and outgoing dependency edges
//   - Group: a cohesive evaluation stage of one object (transform, pose,
//     per-bone, shadow-copy refresh), owning its units
//   - ObjectNode: a top-level addressable entity owning its groups and
//     referencing its original data and shadow copy
//   - Graph: the built graph with flat unit/object arrays and the entry set
//     of externally tagged units
//
// Graphs are assembled through Builder, which validates the description so
// the engine can rely on its structural invariants: unique names, edges
// between known units, and a usable entry operation on every group that can
// be re-entered during propagation.
//
// External changes are recorded with Graph.Tag, which marks the unit
// directly modified and adds it to the entry set drained at cycle
// boundaries.
//
// # Terminal Opcodes
//
// A small closed set of opcodes (see IsTerminal) is excluded from the
// blanket group-level dirty tagging during flush: those computations must
// not re-run merely because something downstream of them changed. The
// exclusion is a policy table, not a derived property.
package graph
