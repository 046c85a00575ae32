package statetree

import (
	"container/heap"
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/uistate/state"
)

// Report summarizes an update batch.
type Report struct {
	Batch     int                           // sequence number of the batch, starting at 1
	Evaluated map[state.Kind][]state.NodeID // nodes evaluated per kind, in evaluation order
	Changed   map[state.Kind][]state.NodeID // nodes whose state changed, per kind
	Errors    []*state.InvalidAttributeValue
}

func newReport(batch int) *Report {
	return &Report{
		Batch:     batch,
		Evaluated: make(map[state.Kind][]state.NodeID),
		Changed:   make(map[state.Kind][]state.NodeID),
	}
}

// WasEvaluated checks if a kind of state of node id has been evaluated.
func (r *Report) WasEvaluated(k state.Kind, id state.NodeID) bool {
	return contains(r.Evaluated[k], id)
}

// HasChanged checks if a kind of state of node id has changed.
func (r *Report) HasChanged(k state.Kind, id state.NodeID) bool {
	return contains(r.Changed[k], id)
}

func contains(ids []state.NodeID, id state.NodeID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "batch %d:", r.Batch)
	for _, d := range state.Derivations() {
		fmt.Fprintf(&b, " %s evaluated=%v changed=%v;", d.Kind, r.Evaluated[d.Kind], r.Changed[d.Kind])
	}
	fmt.Fprintf(&b, " %d error(s)", len(r.Errors))
	return b.String()
}

// Update runs an update batch: every pending kind of state of every node
// attached to the root is re-evaluated, and changes of child-aggregated
// state propagate to ancestors. Nodes not attached to the root stay
// pending.
//
// Invalid attribute values do not stop the batch. The affected node keeps
// its previous state and the error is listed in the report.
func (t *Tree) Update() *Report {
	t.batch++
	r := newReport(t.batch)
	t.metrics.batch()
	if t.root == nil {
		tracer().Debugf("update batch %d: no root", t.batch)
		return r
	}
	for _, d := range state.Derivations() {
		if d.ChildAggregated {
			t.propagate(d, r)
		} else {
			for _, n := range t.attached(d.Kind) {
				t.reduce(d, n, r)
			}
		}
	}
	tracer().Infof("update %s", r)
	return r
}

// reduce evaluates kind d of n and clears its pending flag.
// It returns true if the state of n changed.
func (t *Tree) reduce(d state.Derivation, n *StyledNode, r *Report) bool {
	delete(t.pending[d.Kind], n)
	changed, err := d.Reduce(&n.slot, n, n.childSlots(), t.diag)
	r.Evaluated[d.Kind] = append(r.Evaluated[d.Kind], n.id)
	t.metrics.evaluated(d.Kind)
	if err != nil {
		var invalid *state.InvalidAttributeValue
		if errors.As(err, &invalid) {
			r.Errors = append(r.Errors, invalid)
		}
		t.metrics.invalidValue(d.Kind)
		tracer().P("node", n.id).Errorf("%s not updated: %v", d.Kind, err)
		return false
	}
	if changed {
		r.Changed[d.Kind] = append(r.Changed[d.Kind], n.id)
		t.metrics.changed(d.Kind)
	}
	return changed
}

// propagate evaluates a child-aggregated kind bottom-up. Pending nodes are
// kept in a queue ordered by depth, deepest first, so all children of a
// node are done before the node itself is taken from the queue. A parent
// enters the queue only if a child changed.
func (t *Tree) propagate(d state.Derivation, r *Report) {
	q := &depthQueue{}
	queued := make(map[*StyledNode]bool)
	enqueue := func(n *StyledNode) {
		if !queued[n] {
			heap.Push(q, queueItem{node: n, depth: n.Depth()})
			queued[n] = true
		}
	}
	for _, n := range t.attached(d.Kind) {
		enqueue(n)
	}
	for q.Len() > 0 {
		n := heap.Pop(q).(queueItem).node
		delete(queued, n)
		if t.checks {
			t.checkOrder(d.Kind, n, queued)
		}
		changed := t.reduce(d, n, r)
		parent := n.StyledParent()
		if parent == nil {
			continue
		}
		if !changed {
			tracer().P("node", n.id).Debugf("%s unchanged, propagation stops", d.Kind)
			t.metrics.stopped(d.Kind)
			continue
		}
		enqueue(parent)
	}
}

// checkOrder asserts that no child of n is still waiting for evaluation.
// The depth ordering of the queue already guarantees this; the check
// guards against changes to the scheduling of evaluations.
func (t *Tree) checkOrder(k state.Kind, n *StyledNode, queued map[*StyledNode]bool) {
	for _, ch := range n.StyledChildren() {
		assertThat(!queued[ch], "%s of %v evaluated before its child %v", k, n, ch)
	}
}

// --- Priority queue --------------------------------------------------------

type queueItem struct {
	node  *StyledNode
	depth int
}

// depthQueue implements heap.Interface. Deeper nodes come first, nodes of
// equal depth in ID order.
type depthQueue []queueItem

func (q depthQueue) Len() int { return len(q) }

func (q depthQueue) Less(i, j int) bool {
	if q[i].depth != q[j].depth {
		return q[i].depth > q[j].depth
	}
	return q[i].node.id < q[j].node.id
}

func (q depthQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *depthQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *depthQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
