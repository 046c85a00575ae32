package state

import (
	"github.com/npillmayer/uistate/attr"
)

// Kind enumerates the derivation kinds. The set is closed.
type Kind uint8

const (
	KindStyle Kind = iota + 1 // self-derived paint style
	KindSize                  // child-aggregated box size
)

func (k Kind) String() string {
	switch k {
	case KindStyle:
		return "style"
	case KindSize:
		return "size"
	}
	return "unknown"
}

// NodeState is the computed state stored for a single node. It is the
// node's exclusive write slot: only the node's own Reduce calls replace
// its values, and callers must not run two of them on the same node
// concurrently.
type NodeState struct {
	Size  Size
	Style Style
}

// ReduceStyle re-evaluates the Style of node and stores it.
// It returns true if the stored Style changed.
func (st *NodeState) ReduceStyle(node Node, diag Diagnostics) bool {
	style, changed := EvaluateStyle(node, st.Style, diag)
	st.Style = style
	return changed
}

// ReduceSize re-evaluates the Size of node from the Sizes of its children
// and stores it. It returns true if the stored Size changed. On error the
// stored Size is left untouched and false is returned.
func (st *NodeState) ReduceSize(node Node, children []Size, diag Diagnostics) (bool, error) {
	size, changed, err := EvaluateSize(node, children, st.Size, diag)
	if err != nil {
		return false, err
	}
	st.Size = size
	return changed, nil
}

// Derivation describes a derivation kind: its mask, wether it aggregates
// over children, and how to reduce it on a node.
//
// Reduce receives the node's slot and the slots of its children (in child
// order); self-derived kinds ignore the children.
type Derivation struct {
	Kind            Kind
	Mask            AttributeMask
	ChildAggregated bool
	Reduce          func(st *NodeState, node Node, children []*NodeState, diag Diagnostics) (bool, error)
}

var derivations = [...]Derivation{
	{
		Kind: KindStyle,
		Mask: StyleMask,
		Reduce: func(st *NodeState, node Node, _ []*NodeState, diag Diagnostics) (bool, error) {
			return st.ReduceStyle(node, diag), nil
		},
	},
	{
		Kind:            KindSize,
		Mask:            SizeMask,
		ChildAggregated: true,
		Reduce: func(st *NodeState, node Node, children []*NodeState, diag Diagnostics) (bool, error) {
			sizes := make([]Size, len(children))
			for i, ch := range children {
				sizes[i] = ch.Size
			}
			return st.ReduceSize(node, sizes, diag)
		},
	},
}

// Derivations returns the table of all derivation kinds, self-derived
// kinds first.
func Derivations() []Derivation {
	d := make([]Derivation, len(derivations))
	copy(d, derivations[:])
	return d
}

// Lookup returns the derivation for a kind.
func Lookup(k Kind) (Derivation, bool) {
	for _, d := range derivations {
		if d.Kind == k {
			return d, true
		}
	}
	return Derivation{}, false
}

// Mask returns the attribute mask of a kind. Unknown kinds have an empty mask.
func (k Kind) Mask() AttributeMask {
	d, _ := Lookup(k)
	return d.Mask
}

// Unread returns the attributes of attrs which no derivation kind
// declares in its mask. Such attributes never influence computed state.
func Unread(attrs []attr.Attribute) []attr.Attribute {
	var r []attr.Attribute
	for _, a := range attrs {
		read := false
		for _, d := range derivations {
			read = read || d.Mask.Contains(a.Name)
		}
		if !read {
			r = append(r, a)
		}
	}
	return r
}
