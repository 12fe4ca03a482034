package engine

import (
	"github.com/depflow/depflow/pkg/graph"
	"github.com/depflow/depflow/pkg/parallel"
)

// ClearTags runs the cycle clear: it removes the directly-modified and
// needs-update flags from every unit and drains the entry set. It is
// invoked once per completed evaluation cycle, never mid-flush.
func (f *Flusher) ClearTags(g *graph.Graph) error {
	if g == nil {
		return graph.NewContractError("clear requires a non-nil graph", nil)
	}

	units := g.Units
	parallel.For(0, len(units), len(units) > parallelCutoff, func(i int) {
		units[i].Flags &^= graph.FlagDirectlyModified | graph.FlagNeedsUpdate
	})

	// Drop any entry tags which haven't been flushed.
	g.ClearEntries()

	if f.tel != nil {
		f.log.Debugf("cleared tags on %d units", len(units))
		f.tel.Metrics.RecordClear(len(units))
	}

	return nil
}
