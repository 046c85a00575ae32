package state

import (
	"fmt"

	"github.com/npillmayer/uistate/attr"
)

// Size is the child-aggregated state of a node: box sizing per axis,
// padding and an overflow threshold.
// The zero value is the default: Auto × Auto, no padding, overflow 0.
type Size struct {
	Width    attr.SizeMode
	Height   attr.SizeMode
	Padding  attr.Padding
	Overflow int
}

func (s Size) String() string {
	return fmt.Sprintf("w=%s h=%s pad=%s ovf=%d", s.Width, s.Height, s.Padding, s.Overflow)
}

// TextTag is the tag of text containers. Text containers are sized by
// their content rather than by their children.
const TextTag = "p"

// IsTextContainer returns true for tags marking a node as text container.
func IsTextContainer(tag string) bool {
	return tag == TextTag
}

// EvaluateSize computes the Size of a node from its masked attributes and
// the Sizes of its direct children.
//
// Precondition: children holds the current Size of every child, in child
// order. Callers guarantee this by evaluating bottom-up; it is not verified.
//
// Unless the node is a text container, a node with children fits its
// largest child on each axis: Manual(max of the children's Manual values,
// counting non-Manual children as 0). Attributes then override this
// baseline in declaration order, so the last of duplicate attributes wins.
//
// The returned flag is true iff the new Size differs from prev. If a
// masked attribute cannot be parsed, EvaluateSize returns prev, false and
// an *InvalidAttributeValue.
func EvaluateSize(node Node, children []Size, prev Size, diag Diagnostics) (Size, bool, error) {
	return evaluateSize(SizeMask, node, children, prev, diag)
}

func evaluateSize(mask AttributeMask, node Node, children []Size, prev Size, diag Diagnostics) (
	Size, bool, error) {
	//
	var size Size
	if len(children) > 0 && !IsTextContainer(node.Tag()) {
		size.Width = attr.Manual(maxManual(children, func(s Size) attr.SizeMode { return s.Width }))
		size.Height = attr.Manual(maxManual(children, func(s Size) attr.SizeMode { return s.Height }))
	}
	for _, a := range mask.Filter(node.Attributes()) {
		var err error
		switch a.Name {
		case AttrWidth:
			size.Width, err = a.Value.SizeMode()
		case AttrHeight:
			size.Height, err = a.Value.SizeMode()
		case AttrPadding:
			size.Padding, err = a.Value.Padding()
		case AttrOverflow:
			size.Overflow, err = a.Value.Int()
		default:
			violateMask(KindSize, a.Name)
		}
		if err != nil {
			report(diag, Diagnostic{
				Severity:  SeverityError,
				Kind:      KindSize,
				Node:      node.ID(),
				Attribute: a.Name,
				Value:     a.Value.String(),
				Message:   err.Error(),
			})
			return prev, false, &InvalidAttributeValue{
				Node:      node.ID(),
				Attribute: a.Name,
				Raw:       a.Value.String(),
				Err:       err,
			}
		}
	}
	changed := size != prev
	tracer().Debugf("size of node #%d = %s, changed=%v", node.ID(), size, changed)
	return size, changed, nil
}

// maxManual folds the Manual values of one axis of children. Non-Manual
// children count as 0.
func maxManual(children []Size, axis func(Size) attr.SizeMode) int {
	widest := axis(children[0]).ManualOr(0)
	for _, ch := range children[1:] {
		if v := axis(ch).ManualOr(0); v > widest {
			widest = v
		}
	}
	return widest
}
