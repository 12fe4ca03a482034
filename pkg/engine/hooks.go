package engine

import (
	"github.com/depflow/depflow/pkg/graph"
)

// UpdateContext carries pass-scoped information handed to observers during
// one flush pass.
type UpdateContext struct {
	// PassID uniquely identifies the flush pass.
	PassID string

	// Graph is the graph being flushed.
	Graph *graph.Graph
}

// Observer is notified when an object's shadow record picks up new
// recalculation tags during flush. Notifications are fire-and-forget: the
// engine consumes no result and assumes the call is synchronous and
// non-blocking.
type Observer interface {
	// ShadowUpdated is called once per object per pass, and only when the
	// object's shadow record is expanded.
	ShadowUpdated(ctx *UpdateContext, shadow *graph.DataRecord)
}

// RecalcRecorder receives the recalculation-bookkeeping calls made against
// each object's original record on first visit.
type RecalcRecorder interface {
	// RecalcTag records that the original data needs recalculation.
	RecalcTag(original *graph.DataRecord)

	// RecalcDataTag records that the original data's payload needs
	// recalculation.
	RecalcDataTag(original *graph.DataRecord)
}

// Hooks bundles the external collaborators invoked during flush. The zero
// value is valid: every collaborator is optional.
type Hooks struct {
	// Observer receives shadow-record update notifications.
	Observer Observer

	// Recorder receives recalculation-bookkeeping calls.
	Recorder RecalcRecorder

	// IsExpanded reports whether an object's shadow copy is materialized.
	// When nil, the shadow record's own Expanded marker is consulted.
	IsExpanded func(obj *graph.ObjectNode) bool
}

// expanded resolves the expansion predicate for one object.
func (h *Hooks) expanded(obj *graph.ObjectNode) bool {
	if h.IsExpanded != nil {
		return h.IsExpanded(obj)
	}
	return obj.Shadow != nil && obj.Shadow.Expanded
}
