package statetree

import (
	"fmt"

	"github.com/npillmayer/tyse/core/dimen"

	"github.com/npillmayer/uistate/attr"
	"github.com/npillmayer/uistate/css"
	"github.com/npillmayer/uistate/state"
	"github.com/npillmayer/uistate/tree"
)

// StyledNode is a node of a state tree. It carries the raw inputs of a UI
// element (tag, text, attributes) together with its computed state.
//
// StyledNode implements state.Node. Raw inputs are changed through the
// owning Tree only.
type StyledNode struct {
	tree.Node[*StyledNode] // we build on top of general purpose tree

	id      state.NodeID
	tag     string
	text    string
	hasText bool
	attrs   []attr.Attribute // raw attributes in declaration order
	slot    state.NodeState  // computed state, written by updates only
}

func newStyledNode(id state.NodeID, tag string) *StyledNode {
	sn := &StyledNode{id: id, tag: tag}
	sn.Payload = sn // Payload will always reference the node itself
	return sn
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyledNode]) *StyledNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// ID is part of interface state.Node.
func (sn *StyledNode) ID() state.NodeID {
	return sn.id
}

// Tag is part of interface state.Node.
func (sn *StyledNode) Tag() string {
	return sn.tag
}

// Text is part of interface state.Node.
func (sn *StyledNode) Text() (string, bool) {
	return sn.text, sn.hasText
}

// Attributes is part of interface state.Node. It returns a copy.
func (sn *StyledNode) Attributes() []attr.Attribute {
	a := make([]attr.Attribute, len(sn.attrs))
	copy(a, sn.attrs)
	return a
}

// Size returns the computed size of the node as of the last update.
func (sn *StyledNode) Size() state.Size {
	return sn.slot.Size
}

// Style returns the computed style of the node as of the last update.
func (sn *StyledNode) Style() state.Style {
	return sn.slot.Style
}

// StyledParent returns the parent of sn, or nil.
func (sn *StyledNode) StyledParent() *StyledNode {
	return Node(sn.Parent())
}

// StyledChildren returns the children of sn, in order.
func (sn *StyledNode) StyledChildren() []*StyledNode {
	children := sn.Children()
	r := make([]*StyledNode, len(children))
	for i, ch := range children {
		r[i] = ch.Payload
	}
	return r
}

func (sn *StyledNode) String() string {
	if sn.tag == "" {
		return fmt.Sprintf("<#%d>", sn.id)
	}
	return fmt.Sprintf("<%s #%d>", sn.tag, sn.id)
}

// childSlots returns the state slots of the children of sn, in order.
func (sn *StyledNode) childSlots() []*state.NodeState {
	children := sn.Children()
	slots := make([]*state.NodeState, len(children))
	for i, ch := range children {
		slots[i] = &ch.Payload.slot
	}
	return slots
}

// Dimensions returns the computed width and height of a node as box
// dimensions for layout. Manual unit counts are taken as points.
func Dimensions(sn *StyledNode) (width, height css.DimenT) {
	size := sn.Size()
	return css.FromSizeMode(size.Width, dimen.PT), css.FromSizeMode(size.Height, dimen.PT)
}

var _ state.Node = (*StyledNode)(nil)
