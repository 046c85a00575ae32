package statetree

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/npillmayer/uistate/attr"
	"github.com/npillmayer/uistate/config"
	"github.com/npillmayer/uistate/state"
	"github.com/npillmayer/uistate/tree"
)

// ErrForeignNode is returned if a node passed to a tree has been created
// by a different tree.
var ErrForeignNode = errors.New("statetree: node does not belong to this tree")

// ErrNotAChild is returned by RemoveChild if the node to remove is not a
// child of the given parent.
var ErrNotAChild = errors.New("statetree: node is not a child of parent")

// Tree is a tree of styled nodes together with the bookkeeping of pending
// re-evaluations.
type Tree struct {
	root    *StyledNode
	nodes   map[state.NodeID]*StyledNode
	lastID  state.NodeID
	pending map[state.Kind]map[*StyledNode]struct{}
	batch   int
	checks  bool
	metrics *Metrics
	diag    state.Diagnostics
}

// Option configures a Tree.
type Option func(*Tree)

// WithOrderingChecks turns runtime verification of bottom-up evaluation
// order on or off. With checks on, an update panics if a node's
// child-aggregated state is evaluated while one of its children is still
// pending.
func WithOrderingChecks(on bool) Option {
	return func(t *Tree) {
		t.checks = on
	}
}

// WithMetrics instruments updates with prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(t *Tree) {
		t.metrics = m
	}
}

// WithDiagnostics sets the sink for evaluator diagnostics. The default
// sink forwards to the tracer.
func WithDiagnostics(diag state.Diagnostics) Option {
	return func(t *Tree) {
		t.diag = diag
	}
}

// New creates an empty tree.
func New(opts ...Option) *Tree {
	t := &Tree{
		nodes:   make(map[state.NodeID]*StyledNode),
		pending: make(map[state.Kind]map[*StyledNode]struct{}),
		diag:    state.TracingSink{},
	}
	for _, d := range state.Derivations() {
		t.pending[d.Kind] = make(map[*StyledNode]struct{})
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FromConfig creates an empty tree configured by cfg. If metrics are
// enabled, counters are registered with reg. Options given as opts are
// applied last and override cfg.
func FromConfig(cfg config.Config, reg prometheus.Registerer, opts ...Option) (*Tree, error) {
	o, err := ConfigOptions(cfg, reg)
	if err != nil {
		return nil, err
	}
	return New(append(o, opts...)...), nil
}

// ConfigOptions translates cfg into tree options. If metrics are enabled
// and reg is non-nil, counters are created and registered with reg.
func ConfigOptions(cfg config.Config, reg prometheus.Registerer) ([]Option, error) {
	opts := []Option{WithOrderingChecks(cfg.OrderingChecks)}
	if cfg.Metrics.Enabled && reg != nil {
		m, err := NewMetrics(reg, cfg.Metrics.Namespace)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMetrics(m))
	}
	return opts, nil
}

// Root returns the root node of t, or nil.
func (t *Tree) Root() *StyledNode {
	return t.root
}

// Node returns the node with a given ID.
func (t *Tree) Node(id state.NodeID) (*StyledNode, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of nodes created by t, attached or not.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Pending checks wether a kind of computed state of n awaits re-evaluation.
func (t *Tree) Pending(n *StyledNode, k state.Kind) bool {
	_, ok := t.pending[k][n]
	return ok
}

func (t *Tree) owns(nodes ...*StyledNode) error {
	for _, n := range nodes {
		if n == nil || t.nodes[n.id] != n {
			return fmt.Errorf("%w: %v", ErrForeignNode, n)
		}
	}
	return nil
}

// --- Structure -------------------------------------------------------------

// NewNode creates a detached node with a given tag. All kinds of computed
// state of the new node are pending.
func (t *Tree) NewNode(tag string) *StyledNode {
	t.lastID++
	n := newStyledNode(t.lastID, tag)
	t.nodes[n.id] = n
	t.markAffected(n, func(state.AttributeMask) bool { return true })
	return n
}

// SetRoot makes n the root of t. n must not have a parent.
func (t *Tree) SetRoot(n *StyledNode) error {
	if err := t.owns(n); err != nil {
		return err
	}
	if n.Parent() != nil {
		return fmt.Errorf("statetree: cannot make %v the root, it has a parent", n)
	}
	t.root = n
	return nil
}

// AppendChild appends ch to the children of parent. The child-aggregated
// state of parent becomes pending.
func (t *Tree) AppendChild(parent, ch *StyledNode) error {
	return t.attach(parent, ch, func() error {
		return parent.AddChild(&ch.Node)
	})
}

// InsertChild inserts ch at position i of the children of parent. Positions
// out of range append. The child-aggregated state of parent becomes pending.
func (t *Tree) InsertChild(parent, ch *StyledNode, i int) error {
	return t.attach(parent, ch, func() error {
		return parent.InsertChildAt(i, &ch.Node)
	})
}

func (t *Tree) attach(parent, ch *StyledNode, link func() error) error {
	if err := t.owns(parent, ch); err != nil {
		return err
	}
	if ch == t.root {
		return fmt.Errorf("statetree: cannot attach the root %v", ch)
	}
	if err := link(); err != nil {
		return fmt.Errorf("statetree: cannot attach %v to %v: %w", ch, parent, err)
	}
	t.markStructural(parent)
	return nil
}

// RemoveChild detaches ch from parent. The child-aggregated state of parent
// becomes pending. The subtree of ch keeps its computed state, it is not
// updated while detached.
func (t *Tree) RemoveChild(parent, ch *StyledNode) error {
	if err := t.owns(parent, ch); err != nil {
		return err
	}
	if ch.StyledParent() != parent {
		return fmt.Errorf("%w: %v, %v", ErrNotAChild, ch, parent)
	}
	ch.Isolate()
	t.markStructural(parent)
	return nil
}

// --- Raw inputs ------------------------------------------------------------

// SetAttribute sets attribute name of n to value. If n carries the
// attribute more than once, the duplicates are collapsed into the first
// occurrence. Every kind whose mask declares name becomes pending, even if
// the value did not change.
func (t *Tree) SetAttribute(n *StyledNode, name string, value attr.Value) error {
	if err := t.owns(n); err != nil {
		return err
	}
	attrs := n.attrs[:0:0]
	found := false
	for _, a := range n.attrs {
		if a.Name != name {
			attrs = append(attrs, a)
		} else if !found {
			attrs = append(attrs, attr.Attribute{Name: name, Value: value})
			found = true
		}
	}
	if !found {
		attrs = append(attrs, attr.Attribute{Name: name, Value: value})
	}
	n.attrs = attrs
	tracer().P("node", n.id).Debugf("set %s=%q", name, value)
	t.reportUnread(n, []attr.Attribute{{Name: name, Value: value}})
	t.markAffected(n, func(m state.AttributeMask) bool {
		return m.Affected([]string{name}, false, false)
	})
	return nil
}

// RemoveAttribute removes every occurrence of attribute name from n.
// Removing an attribute n does not carry is a no-op.
func (t *Tree) RemoveAttribute(n *StyledNode, name string) error {
	if err := t.owns(n); err != nil {
		return err
	}
	attrs := n.attrs[:0:0]
	for _, a := range n.attrs {
		if a.Name != name {
			attrs = append(attrs, a)
		}
	}
	if len(attrs) == len(n.attrs) {
		return nil
	}
	n.attrs = attrs
	t.markAffected(n, func(m state.AttributeMask) bool {
		return m.Affected([]string{name}, false, false)
	})
	return nil
}

// SetAttributes replaces all attributes of n. A kind becomes pending only
// if the attributes declared by its mask differ between old and new
// attributes (including their order).
func (t *Tree) SetAttributes(n *StyledNode, attrs []attr.Attribute) error {
	if err := t.owns(n); err != nil {
		return err
	}
	before := make(map[state.Kind]uint64)
	for _, d := range state.Derivations() {
		before[d.Kind] = fingerprint(d.Mask, n)
	}
	n.attrs = make([]attr.Attribute, len(attrs))
	copy(n.attrs, attrs)
	t.reportUnread(n, attrs)
	for _, d := range state.Derivations() {
		if fp := fingerprint(d.Mask, n); fp != before[d.Kind] {
			t.markPending(n, d.Kind)
		} else {
			tracer().P("node", n.id).Debugf("masked inputs of %s unchanged", d.Kind)
		}
	}
	return nil
}

// SetText sets the text content of n. Kinds depending on text become pending.
func (t *Tree) SetText(n *StyledNode, text string) error {
	if err := t.owns(n); err != nil {
		return err
	}
	n.text, n.hasText = text, true
	t.markAffected(n, func(m state.AttributeMask) bool {
		return m.Affected(nil, true, false)
	})
	return nil
}

// SetTag changes the tag of n. Kinds depending on the tag become pending.
func (t *Tree) SetTag(n *StyledNode, tag string) error {
	if err := t.owns(n); err != nil {
		return err
	}
	n.tag = tag
	t.markAffected(n, func(m state.AttributeMask) bool {
		return m.Affected(nil, false, true)
	})
	return nil
}

// reportUnread reports attributes which no derivation kind reads.
func (t *Tree) reportUnread(n *StyledNode, attrs []attr.Attribute) {
	if t.diag == nil {
		return
	}
	for _, a := range state.Unread(attrs) {
		t.diag.Report(state.Diagnostic{
			Severity:  state.SeverityInfo,
			Node:      n.id,
			Attribute: a.Name,
			Value:     a.Value.String(),
			Message:   "unsupported attribute, ignored",
		})
	}
}

// --- Pending state ---------------------------------------------------------

func (t *Tree) markPending(n *StyledNode, k state.Kind) {
	tracer().P("node", n.id).Debugf("%s pending", k)
	t.pending[k][n] = struct{}{}
}

func (t *Tree) markAffected(n *StyledNode, affected func(state.AttributeMask) bool) {
	for _, d := range state.Derivations() {
		if affected(d.Mask) {
			t.markPending(n, d.Kind)
		}
	}
}

func (t *Tree) markStructural(parent *StyledNode) {
	for _, d := range state.Derivations() {
		if d.ChildAggregated {
			t.markPending(parent, d.Kind)
		}
	}
}

// attached returns the pending nodes of kind k which belong to the subtree
// of the root, ordered by ID.
func (t *Tree) attached(k state.Kind) []*StyledNode {
	if t.root == nil {
		return nil
	}
	pending := t.pending[k]
	if len(pending) == 0 {
		return nil
	}
	var nodes []*StyledNode
	t.root.TopDown(func(n *tree.Node[*StyledNode], _ int) bool {
		if _, ok := pending[n.Payload]; ok {
			nodes = append(nodes, n.Payload)
		}
		return true
	})
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id < nodes[j].id })
	return nodes
}

// maskedInputs is what a derivation kind sees of a node.
type maskedInputs struct {
	Attributes []attr.Attribute
	Text       string
	HasText    bool
	Tag        string
}

// fingerprint hashes the inputs of n declared by mask m.
func fingerprint(m state.AttributeMask, n *StyledNode) uint64 {
	in := maskedInputs{Attributes: m.Filter(n.attrs)}
	if m.DependsOnText() {
		in.Text, in.HasText = n.text, n.hasText
	}
	if m.DependsOnTag() {
		in.Tag = n.tag
	}
	h, err := hashstructure.Hash(in, hashstructure.FormatV2, nil)
	assertThat(err == nil, "cannot hash inputs of %v: %v", n, err)
	return h
}
