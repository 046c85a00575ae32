package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/uistate/attr"
)

// NodeID identifies a node within its tree.
type NodeID uint64

// Node is the read-only view of a tree node an evaluator works on.
// Nodes are owned by the surrounding tree structure.
type Node interface {
	ID() NodeID
	Tag() string                  // tag/type name, "" if none
	Text() (string, bool)         // text content, if any
	Attributes() []attr.Attribute // attributes in declaration order
}

// AttributeMask declares the raw inputs a derivation kind depends on:
// a fixed set of attribute names, plus wether it depends on text content
// and on tag identity.
//
// Masks are immutable values. The zero value depends on nothing.
type AttributeMask struct {
	names []string // sorted
	text  bool
	tag   bool
}

// NewMask creates a mask for a set of attribute names.
func NewMask(names ...string) AttributeMask {
	n := make([]string, len(names))
	copy(n, names)
	sort.Strings(n)
	return AttributeMask{names: n}
}

// WithText returns a copy of m which depends on text content.
func (m AttributeMask) WithText() AttributeMask {
	m.text = true
	return m
}

// WithTag returns a copy of m which depends on tag identity.
func (m AttributeMask) WithTag() AttributeMask {
	m.tag = true
	return m
}

// Names returns the sorted attribute names of m.
func (m AttributeMask) Names() []string {
	n := make([]string, len(m.names))
	copy(n, m.names)
	return n
}

// Contains checks if an attribute name is declared by m.
func (m AttributeMask) Contains(name string) bool {
	i := sort.SearchStrings(m.names, name)
	return i < len(m.names) && m.names[i] == name
}

// DependsOnText is true if the derivation reads a node's text content.
func (m AttributeMask) DependsOnText() bool {
	return m.text
}

// DependsOnTag is true if the derivation reads a node's tag.
func (m AttributeMask) DependsOnTag() bool {
	return m.tag
}

// Filter returns the attributes declared by m, in their original order.
// Duplicates are kept.
func (m AttributeMask) Filter(attrs []attr.Attribute) []attr.Attribute {
	var r []attr.Attribute
	for _, a := range attrs {
		if m.Contains(a.Name) {
			r = append(r, a)
		}
	}
	return r
}

// Affected tells a collaborator wether a change touches m: any of the
// changed attribute names is declared, or text/tag changed and m depends
// on them.
func (m AttributeMask) Affected(changed []string, textChanged, tagChanged bool) bool {
	if (textChanged && m.text) || (tagChanged && m.tag) {
		return true
	}
	for _, name := range changed {
		if m.Contains(name) {
			return true
		}
	}
	return false
}

func (m AttributeMask) String() string {
	var b strings.Builder
	b.WriteString("[" + strings.Join(m.names, " "))
	if m.text {
		b.WriteString(" +text")
	}
	if m.tag {
		b.WriteString(" +tag")
	}
	b.WriteString("]")
	return b.String()
}

// GoString is used by %#v.
func (m AttributeMask) GoString() string {
	return fmt.Sprintf("state.AttributeMask%s", m.String())
}

// Attribute names read by the evaluators of this package.
const (
	AttrWidth      = "width"
	AttrHeight     = "height"
	AttrPadding    = "padding"
	AttrOverflow   = "overflow"
	AttrBackground = "background"
)

// SizeMask is the mask of the child-aggregated Size derivation.
var SizeMask = NewMask(AttrWidth, AttrHeight, AttrPadding, AttrOverflow).WithText().WithTag()

// StyleMask is the mask of the self-derived Style derivation.
var StyleMask = NewMask(AttrBackground).WithText()
