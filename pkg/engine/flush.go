package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/depflow/depflow/pkg/graph"
	"github.com/depflow/depflow/pkg/parallel"
	"github.com/depflow/depflow/pkg/telemetry"
)

// parallelCutoff is the unit count above which bulk flag resets are
// dispatched over the parallel-for primitive. Below it the dispatch
// overhead dominates the work.
const parallelCutoff = 256

// Flusher runs dirty-flag propagation over a dependency graph. It is not
// safe for concurrent use: a flush pass is single-threaded and runs to
// completion.
type Flusher struct {
	hooks Hooks
	tel   *telemetry.Telemetry
	log   *telemetry.Logger
}

// NewFlusher creates a flusher with the given collaborator hooks. tel may
// be nil, in which case no logging, metrics, or tracing is emitted.
func NewFlusher(hooks Hooks, tel *telemetry.Telemetry) *Flusher {
	f := &Flusher{
		hooks: hooks,
		tel:   tel,
	}
	if tel != nil {
		f.log = tel.Logger.NewComponentLogger("engine")
	}
	return f
}

// FlushResult summarizes one flush pass.
type FlushResult struct {
	// PassID uniquely identifies the pass.
	PassID string

	// UnitsFlushed is the number of units marked as needing update.
	UnitsFlushed int

	// ObjectsVisited is the number of object first-visit handlers run.
	ObjectsVisited int

	// GroupsVisited is the number of group first-visit handlers run.
	GroupsVisited int

	// Duration is the wall time of the pass. Zero for an empty pass.
	Duration time.Duration
}

// FlushUpdates runs one full propagation pass: starting from the externally
// tagged entry units, it walks outgoing dependency edges and marks every
// reachable unit as needing update, invoking the object and group
// first-visit handlers exactly once per owner.
//
// The pass is a no-op when the entry set is empty. The entry set is not
// drained here; ClearTags drains it once the evaluation cycle completes.
func (f *Flusher) FlushUpdates(ctx context.Context, g *graph.Graph) (*FlushResult, error) {
	if g == nil {
		return nil, graph.NewContractError("flush requires a non-nil graph", nil)
	}

	res := &FlushResult{PassID: uuid.New().String()}

	// Nothing to update, early out.
	if g.Entries().Cardinality() == 0 {
		return res, nil
	}

	var span trace.Span
	if f.tel != nil {
		ctx, span = f.tel.Tracer.StartSpan(ctx, "engine.flush",
			attribute.String("pass_id", res.PassID),
			attribute.Int("graph_units", len(g.Units)),
		)
		defer span.End()
		f.tel.Metrics.SetGraphSize(len(g.Units), len(g.Objects))
	}

	start := time.Now()

	// Reset all transient flags, get ready for the flush.
	resetState(g)

	// Starting from the tagged entry units, flush outwards.
	queue := &workList{}
	scheduleEntries(g, queue)

	uctx := &UpdateContext{
		PassID: res.PassID,
		Graph:  g,
	}

	for !queue.empty() {
		u := queue.popFront()
		for u != nil {
			// Tag the unit as required for update.
			u.Flags |= graph.FlagNeedsUpdate
			res.UnitsFlushed++

			// Inform the owning object and group about the change.
			comp := u.Owner
			f.handleObject(comp.Owner, uctx, res)
			f.handleGroup(g, comp, queue, res)

			// Flush to units along outgoing edges.
			u = scheduleChildren(u, queue)
		}
	}

	res.Duration = time.Since(start)

	if f.tel != nil {
		f.tel.Metrics.RecordFlushPass(res.UnitsFlushed, res.Duration)
		f.log.WithPassID(res.PassID).Debugf(
			"flushed %d units across %d objects in %s",
			res.UnitsFlushed, res.ObjectsVisited, res.Duration)
	}

	return res, nil
}

// resetState clears every unit's scheduled marker, every object's visited
// marker, and every group's visit state. Each element is independent, so
// large graphs reset in parallel.
func resetState(g *graph.Graph) {
	units := g.Units
	parallel.For(0, len(units), len(units) > parallelCutoff, func(i int) {
		units[i].Scheduled = false
	})

	objects := g.Objects
	parallel.For(0, len(objects), len(objects) > parallelCutoff, func(i int) {
		obj := objects[i]
		obj.Visited = false
		for _, comp := range obj.Components {
			comp.State = graph.VisitNone
		}
	})
}

// scheduleEntries seeds the work list with every entry unit. Iteration
// order over the entry set is unspecified; the final dirty set must not
// depend on it.
func scheduleEntries(g *graph.Graph, queue *workList) {
	g.Entries().Each(func(u *graph.Unit) bool {
		queue.pushBack(u)
		u.Scheduled = true
		return false
	})
}

// handleObject runs the object first-visit side effects. We only inform an
// object once per pass.
func (f *Flusher) handleObject(obj *graph.ObjectNode, uctx *UpdateContext, res *FlushResult) {
	if obj.Visited {
		return
	}
	obj.Visited = true
	res.ObjectsVisited++

	// External tagging records recalculation intents on the original data;
	// carry them over to the shadow record used for evaluation.
	if obj.Original != nil && obj.Shadow != nil {
		obj.Shadow.Tags |= obj.Original.Tags & graph.RecalcAll
	}

	if f.hooks.expanded(obj) && f.hooks.Observer != nil {
		f.hooks.Observer.ShadowUpdated(uctx, obj.Shadow)
	}

	if f.hooks.Recorder != nil {
		f.hooks.Recorder.RecalcTag(obj.Original)
		f.hooks.Recorder.RecalcDataTag(obj.Original)
	}
}

// handleGroup runs the group first-visit side effects. We only handle a
// group once per pass.
func (f *Flusher) handleGroup(g *graph.Graph, comp *graph.Group, queue *workList, res *FlushResult) {
	if comp.State == graph.VisitDone {
		return
	}
	comp.State = graph.VisitDone
	res.GroupsVisited++

	obj := comp.Owner

	// A group whose results depend on the shadow-copy refresh re-tags the
	// object's shadow-copy group. The frontier is extended explicitly
	// rather than relying on an edge the builder may not have wired.
	if g.UseShadowCopy && comp.DependsOnShadow {
		if shadow := obj.Component(graph.ComponentShadowCopy); shadow != nil && shadow.State == graph.VisitNone {
			scheduleGroupEntry(shadow, queue)
		}
	}

	// Tag all owned units for update, except terminal opcodes: those must
	// not re-run merely because something downstream of them changed.
	for _, u := range comp.Units {
		if graph.IsTerminal(u.Opcode) {
			continue
		}
		u.Flags |= graph.FlagNeedsUpdate
	}

	// When some target changes a bone, the whole pose solve must re-run,
	// otherwise the result is unpredictable.
	if comp.Kind == graph.ComponentBone {
		if pose := obj.Component(graph.ComponentPose); pose != nil && pose.State == graph.VisitNone {
			scheduleGroupEntry(pose, queue)
		}
	}
}

// scheduleGroupEntry pushes a group's entry operation to the front of the
// work list and promotes the group to scheduled. An entry already on the
// work list is not pushed twice.
func scheduleGroupEntry(comp *graph.Group, queue *workList) {
	if comp.Entry != nil && !comp.Entry.Scheduled {
		comp.Entry.Scheduled = true
		queue.pushFront(comp.Entry)
	}
	comp.State = graph.VisitScheduled
}

// scheduleChildren schedules the targets of the unit's outgoing edges.
//
// The first unscheduled target bypasses the work list and is returned so
// the caller can continue with it inline, minimizing queue churn for the
// common single-child case. Every subsequent target is pushed to the front.
func scheduleChildren(u *graph.Unit, queue *workList) *graph.Unit {
	var next *graph.Unit
	for _, to := range u.Outlinks {
		if to.Scheduled {
			continue
		}
		if next == nil {
			next = to
		} else {
			queue.pushFront(to)
		}
		to.Scheduled = true
	}
	return next
}
