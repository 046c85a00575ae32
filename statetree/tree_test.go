package statetree

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/uistate/attr"
	"github.com/npillmayer/uistate/config"
	"github.com/npillmayer/uistate/state"
	"github.com/npillmayer/uistate/tree"
)

// threeLevels builds root → child → leaf, with leaf width=10.
func threeLevels(t *testing.T, opts ...Option) (*Tree, []*StyledNode) {
	st := New(opts...)
	root, child, leaf := st.NewNode("div"), st.NewNode("div"), st.NewNode("div")
	require.NoError(t, st.SetRoot(root))
	require.NoError(t, st.AppendChild(root, child))
	require.NoError(t, st.AppendChild(child, leaf))
	require.NoError(t, st.SetAttribute(leaf, "width", "10"))
	return st, []*StyledNode{root, child, leaf}
}

func TestInitialUpdate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uistate.statetree")
	defer teardown()
	//
	st, n := threeLevels(t)
	r := st.Update()
	t.Logf("%s\n%s", r, st.Print())
	assert.Equal(t, []state.NodeID{3, 2, 1}, r.Evaluated[state.KindSize], "bottom-up order")
	assert.Len(t, r.Evaluated[state.KindStyle], 3)
	assert.Equal(t, attr.Manual(10), n[0].Size().Width)
	assert.Equal(t, attr.Manual(0), n[0].Size().Height)
	assert.Empty(t, r.Errors)
	for _, node := range n {
		assert.False(t, st.Pending(node, state.KindSize))
		assert.False(t, st.Pending(node, state.KindStyle))
	}
}

func TestNoOpEditStopsAtLeaf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uistate.statetree")
	defer teardown()
	//
	st, n := threeLevels(t)
	st.Update()
	root, child, leaf := n[0], n[1], n[2]
	require.NoError(t, st.SetAttribute(leaf, "width", "10"))
	r := st.Update()
	assert.True(t, r.WasEvaluated(state.KindSize, leaf.ID()))
	assert.False(t, r.HasChanged(state.KindSize, leaf.ID()))
	assert.False(t, r.WasEvaluated(state.KindSize, child.ID()), "propagation must stop at the leaf")
	assert.False(t, r.WasEvaluated(state.KindSize, root.ID()))
	assert.Empty(t, r.Evaluated[state.KindStyle], "width is not read by style")
}

func TestChangePropagatesToRoot(t *testing.T) {
	st, n := threeLevels(t)
	st.Update()
	require.NoError(t, st.SetAttribute(n[2], "width", "20"))
	r := st.Update()
	assert.Equal(t, []state.NodeID{3, 2, 1}, r.Evaluated[state.KindSize])
	assert.Equal(t, []state.NodeID{3, 2, 1}, r.Changed[state.KindSize])
	assert.Equal(t, attr.Manual(20), n[0].Size().Width)
}

func TestPropagationStopsAtUnchangedAncestor(t *testing.T) {
	st, n := threeLevels(t)
	require.NoError(t, st.SetAttribute(n[1], "width", "5"))
	st.Update()
	require.NoError(t, st.SetAttribute(n[2], "width", "20"))
	r := st.Update()
	assert.True(t, r.HasChanged(state.KindSize, n[2].ID()))
	assert.True(t, r.WasEvaluated(state.KindSize, n[1].ID()))
	assert.False(t, r.HasChanged(state.KindSize, n[1].ID()), "explicit width wins over children")
	assert.False(t, r.WasEvaluated(state.KindSize, n[0].ID()))
	assert.Equal(t, attr.Manual(5), n[0].Size().Width)
}

func TestRemoveChildReaggregates(t *testing.T) {
	st := New()
	root := st.NewNode("div")
	require.NoError(t, st.SetRoot(root))
	var children []*StyledNode
	for _, w := range []attr.Value{"3", "7", "2"} {
		ch := st.NewNode("div")
		require.NoError(t, st.SetAttribute(ch, "width", w))
		require.NoError(t, st.AppendChild(root, ch))
		children = append(children, ch)
	}
	st.Update()
	assert.Equal(t, attr.Manual(7), root.Size().Width)
	require.NoError(t, st.RemoveChild(root, children[1]))
	assert.True(t, st.Pending(root, state.KindSize))
	r := st.Update()
	assert.Equal(t, []state.NodeID{root.ID()}, r.Evaluated[state.KindSize])
	assert.Equal(t, attr.Manual(3), root.Size().Width)
	assert.ErrorIs(t, st.RemoveChild(root, children[1]), ErrNotAChild)
}

func TestInsertChildKeepsOrder(t *testing.T) {
	st, n := threeLevels(t)
	st.Update()
	x, y := st.NewNode("div"), st.NewNode("div")
	require.NoError(t, st.SetAttribute(x, "width", "9"))
	require.NoError(t, st.InsertChild(n[0], x, 0))
	require.NoError(t, st.InsertChild(n[0], y, 99))
	assert.Equal(t, []*StyledNode{x, n[1], y}, n[0].StyledChildren())
	assert.True(t, st.Pending(n[0], state.KindSize))
	r := st.Update()
	assert.Equal(t, []state.NodeID{x.ID(), y.ID(), n[0].ID()}, r.Evaluated[state.KindSize])
	assert.Equal(t, attr.Manual(10), n[0].Size().Width)
	assert.ErrorIs(t, st.InsertChild(n[2], x, 0), tree.ErrHasParent)
	assert.Error(t, st.InsertChild(x, n[0], 0), "the root cannot become a child")
}

func TestInvalidValueKeepsPreviousState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uistate.statetree")
	defer teardown()
	//
	diag := &state.Collector{}
	st, n := threeLevels(t, WithDiagnostics(diag))
	st.Update()
	leaf := n[2]
	require.NoError(t, st.SetAttribute(leaf, "width", "abc"))
	r := st.Update()
	require.Len(t, r.Errors, 1)
	assert.Equal(t, leaf.ID(), r.Errors[0].Node)
	assert.Equal(t, "width", r.Errors[0].Attribute)
	assert.True(t, errors.Is(r.Errors[0], attr.ErrInvalidValue))
	assert.Equal(t, attr.Manual(10), leaf.Size().Width)
	assert.False(t, r.WasEvaluated(state.KindSize, n[1].ID()))
	assert.Len(t, diag.Filter(state.SeverityError), 1)
	assert.False(t, st.Pending(leaf, state.KindSize), "a failed evaluation is not retried")
}

func TestSetAttributesComparesMaskedInputs(t *testing.T) {
	diag := &state.Collector{}
	st := New(WithDiagnostics(diag))
	n := st.NewNode("div")
	require.NoError(t, st.SetRoot(n))
	require.NoError(t, st.SetAttributes(n, []attr.Attribute{attr.A("width", "10"), attr.A("background", "red")}))
	st.Update()
	red, _ := attr.LookupColor("red").Get()
	assert.Equal(t, red, n.Style().Background)

	require.NoError(t, st.SetAttributes(n, []attr.Attribute{
		attr.A("onclick", "go"), attr.A("width", "10"), attr.A("background", "red"),
	}))
	assert.False(t, st.Pending(n, state.KindSize))
	assert.False(t, st.Pending(n, state.KindStyle))
	infos := diag.Filter(state.SeverityInfo)
	require.Len(t, infos, 1)
	assert.Equal(t, "onclick", infos[0].Attribute)

	require.NoError(t, st.SetAttributes(n, []attr.Attribute{attr.A("width", "10"), attr.A("background", "blue")}))
	assert.False(t, st.Pending(n, state.KindSize))
	assert.True(t, st.Pending(n, state.KindStyle))
	r := st.Update()
	assert.Empty(t, r.Evaluated[state.KindSize])
	assert.True(t, r.HasChanged(state.KindStyle, n.ID()))
}

func TestTextAndTagEdits(t *testing.T) {
	st := New()
	n := st.NewNode("div")
	require.NoError(t, st.SetRoot(n))
	st.Update()
	require.NoError(t, st.SetText(n, "Hello"))
	assert.True(t, st.Pending(n, state.KindSize))
	assert.True(t, st.Pending(n, state.KindStyle))
	st.Update()
	require.NoError(t, st.SetTag(n, state.TextTag))
	assert.True(t, st.Pending(n, state.KindSize))
	assert.False(t, st.Pending(n, state.KindStyle))
	require.NoError(t, st.RemoveAttribute(n, "width")) // no-op
	assert.False(t, st.Pending(n, state.KindStyle))
}

func TestDetachedNodesStayPending(t *testing.T) {
	st, n := threeLevels(t)
	st.Update()
	x := st.NewNode("div")
	require.NoError(t, st.SetAttribute(x, "width", "30"))
	r := st.Update()
	assert.False(t, r.WasEvaluated(state.KindSize, x.ID()))
	assert.True(t, st.Pending(x, state.KindSize))
	require.NoError(t, st.AppendChild(n[0], x))
	r = st.Update()
	assert.True(t, r.WasEvaluated(state.KindSize, x.ID()))
	assert.Equal(t, attr.Manual(30), n[0].Size().Width)
}

func TestStructuralErrors(t *testing.T) {
	st, n := threeLevels(t)
	other := New()
	foreign := other.NewNode("div")
	assert.ErrorIs(t, st.AppendChild(n[0], foreign), ErrForeignNode)
	assert.ErrorIs(t, st.AppendChild(n[2], n[1]), tree.ErrHasParent)
	loose := st.NewNode("div")
	assert.Error(t, st.AppendChild(loose, n[0]), "the root cannot become a child")
	assert.Error(t, st.SetRoot(n[1]), "a child cannot become the root")
	a, b := st.NewNode("div"), st.NewNode("div")
	require.NoError(t, st.AppendChild(a, b))
	assert.ErrorIs(t, st.AppendChild(b, a), tree.ErrCycle)
	assert.Nil(t, loose.Parent())
}

func TestOrderingChecks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uistate.statetree")
	defer teardown()
	//
	st, n := threeLevels(t, WithOrderingChecks(true))
	assert.NotPanics(t, func() { st.Update() })
	queued := map[*StyledNode]bool{n[2]: true}
	assert.Panics(t, func() { st.checkOrder(state.KindSize, n[1], queued) })
	assert.NotPanics(t, func() { st.checkOrder(state.KindSize, n[0], queued) })
}

func TestOutOfOrderEvaluationIsStale(t *testing.T) {
	// evaluating a parent before its child is the caller's fault and goes unnoticed
	_, n := threeLevels(t)
	d, ok := state.Lookup(state.KindSize)
	require.True(t, ok)
	for _, node := range []*StyledNode{n[1], n[2]} {
		_, err := d.Reduce(&node.slot, node, node.childSlots(), nil)
		require.NoError(t, err)
	}
	assert.Equal(t, attr.Manual(10), n[2].Size().Width)
	assert.Equal(t, attr.Manual(0), n[1].Size().Width, "parent read the child's stale size")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg, "test")
	require.NoError(t, err)
	st, n := threeLevels(t, WithMetrics(m))
	st.Update()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.batches))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.evaluations.WithLabelValues("size")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.evaluations.WithLabelValues("style")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.changes.WithLabelValues("size")))
	require.NoError(t, st.SetAttribute(n[2], "width", "10"))
	st.Update()
	assert.Equal(t, 4.0, testutil.ToFloat64(m.evaluations.WithLabelValues("size")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stops.WithLabelValues("size")))
	require.NoError(t, st.SetAttribute(n[2], "width", "wide"))
	st.Update()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invalid.WithLabelValues("size")))
	_, err = NewMetrics(reg, "test")
	assert.Error(t, err, "duplicate registration")
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.OrderingChecks = true
	cfg.Metrics.Enabled = true
	st, err := FromConfig(cfg, prometheus.NewRegistry())
	require.NoError(t, err)
	assert.True(t, st.checks)
	assert.NotNil(t, st.metrics)
	st, err = FromConfig(config.Default(), nil)
	require.NoError(t, err)
	assert.False(t, st.checks)
	assert.Nil(t, st.metrics)
}

func TestDimensions(t *testing.T) {
	st, n := threeLevels(t)
	require.NoError(t, st.SetAttribute(n[0], "width", "stretch"))
	st.Update()
	w, h := Dimensions(n[2])
	assert.True(t, w.IsAbsolute())
	assert.True(t, h.IsAuto())
	w, _ = Dimensions(n[0])
	assert.True(t, w.IsPercent())
}
