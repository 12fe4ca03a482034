// Package engine implements dirty-flag propagation over a dependency graph.
//
// # Overview
//
// Between evaluation cycles, external changes are recorded with graph.Tag,
// which marks units directly modified and collects them in the graph's
// entry set. FlushUpdates then determines the complete set of downstream
// units that must re-run, without running anything:
//
//  1. Reset every transient marker (unit scheduled bits, object visited
//     bits, group visit states); large graphs reset in parallel
//  2. Seed the work list with the entry set
//  3. Drain the work list, walking outgoing dependency edges and marking
//     every reachable unit as needing update exactly once
//  4. On the first visit to each owning object and group, run the
//     first-visit handlers (shadow-record tag merge, observer notification,
//     blanket group tagging, composite pose re-entry)
//
// Once the external scheduler has executed the tagged units, ClearTags
// removes the persistent dirty flags and drains the entry set for the next
// cycle.
//
// The traversal is neither pure BFS nor pure DFS: the first unscheduled
// child of each unit is continued inline and the rest are pushed to the
// front of the work list, which biases the walk toward the most recently
// discovered branch. The order is deterministic for a fixed edge order, but
// callers must only rely on the final dirty set, never on processing order.
//
// A flush pass is single-threaded and runs to completion; the graph
// structure must not be mutated while it runs. The only parallel work is
// the embarrassingly parallel flag reset and cycle clear.
package engine
