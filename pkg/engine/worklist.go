package engine

import "github.com/depflow/depflow/pkg/graph"

// workList is the double-ended queue of units driving one flush pass. It is
// never retained across passes.
//
// Entry units are appended to the back; units discovered during traversal
// are pushed to the front, biasing the walk toward depth-first continuation
// of the most recently discovered branch.
type workList struct {
	// front holds front-pushed units, most recent last.
	front []*graph.Unit

	// back holds the FIFO seed; head indexes the next unit to pop.
	back []*graph.Unit
	head int
}

func (q *workList) pushBack(u *graph.Unit) {
	q.back = append(q.back, u)
}

func (q *workList) pushFront(u *graph.Unit) {
	q.front = append(q.front, u)
}

func (q *workList) popFront() *graph.Unit {
	if n := len(q.front); n > 0 {
		u := q.front[n-1]
		q.front[n-1] = nil
		q.front = q.front[:n-1]
		return u
	}
	if q.head < len(q.back) {
		u := q.back[q.head]
		q.back[q.head] = nil
		q.head++
		return u
	}
	return nil
}

func (q *workList) empty() bool {
	return len(q.front) == 0 && q.head >= len(q.back)
}
