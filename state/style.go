package state

import (
	"github.com/npillmayer/uistate/attr"
)

// Style is the self-derived paint state of a node.
// The zero value has a fully transparent background.
type Style struct {
	Background attr.Color
}

func (s Style) String() string {
	return "bg=" + s.Background.String()
}

// EvaluateStyle computes the Style of a node from its masked attributes.
//
// A background attribute naming a palette color sets the background.
// A name outside the palette is not an error: it is reported as
// informational and otherwise ignored. If a node carries no recognizable
// background at all but at least one unrecognized one, the previously
// stored background is kept. Without any background attribute the
// background is transparent.
//
// The returned flag is true iff the new Style differs from prev.
func EvaluateStyle(node Node, prev Style, diag Diagnostics) (Style, bool) {
	return evaluateStyle(StyleMask, node, prev, diag)
}

func evaluateStyle(mask AttributeMask, node Node, prev Style, diag Diagnostics) (Style, bool) {
	style := Style{Background: attr.Transparent}
	var recognized, unrecognized bool
	for _, a := range mask.Filter(node.Attributes()) {
		switch a.Name {
		case AttrBackground:
			if c, ok := a.Value.Color().Get(); ok {
				style.Background = c
				recognized = true
			} else {
				unrecognized = true
				report(diag, Diagnostic{
					Severity:  SeverityInfo,
					Kind:      KindStyle,
					Node:      node.ID(),
					Attribute: a.Name,
					Value:     a.Value.String(),
					Message:   "unknown color name, keeping previous background",
				})
			}
		default:
			violateMask(KindStyle, a.Name)
		}
	}
	if unrecognized && !recognized {
		style.Background = prev.Background
	}
	changed := style != prev
	tracer().Debugf("style of node #%d = %s, changed=%v", node.ID(), style, changed)
	return style, changed
}
