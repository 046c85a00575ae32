/*
Package css provides CSS-like dimensions for layout consumers.

Computed box sizes (package state) talk about unit counts and
percentages. Layout and rendering code downstream works in typesetting
dimensions (dimen.DU). DimenT bridges the two: it is an option type for
a box dimension which is either auto, a percentage, or a fixed value.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

import (
	"fmt"

	"github.com/npillmayer/tyse/core/dimen"
	. "github.com/npillmayer/tyse/core/percent"

	"github.com/npillmayer/uistate/attr"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	kindMask      uint32 = 0x000f

	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d       dimen.DU
	percent Percent
	flags   uint32
}

/*
type DimenT
	= Auto
	| JustDimen dimen
	| Percentage Percent
*/

// Auto creates a dimension without an explicit size.
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(n Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// FromSizeMode converts a computed size mode to a dimension. Manual unit
// counts are scaled by unit, e.g. dimen.PT.
func FromSizeMode(m attr.SizeMode, unit dimen.DU) DimenT {
	var n int
	switch sm := m.Match(); sm {
	case sm.Manual(&n):
		return JustDimen(dimen.DU(n) * unit)
	case sm.Percentage(&n):
		return Percentage(FromInt(n))
	}
	return Auto()
}

// IsAuto returns true if d is auto.
func (d DimenT) IsAuto() bool {
	return d.flags&kindMask == dimenAuto
}

// IsAbsolute returns true if d is a fixed value.
func (d DimenT) IsAbsolute() bool {
	return d.flags&kindMask == dimenAbsolute
}

// IsPercent returns true if d is relative to the available space.
func (d DimenT) IsPercent() bool {
	return d.flags&relativeMask == dimenPercent
}

func (d DimenT) String() string {
	switch {
	case d.IsAuto():
		return "auto"
	case d.IsAbsolute():
		return fmt.Sprint(d.d)
	case d.IsPercent():
		return fmt.Sprint(d.percent)
	}
	return "none"
}

// ---------------------------------------------------------------------------

// Match starts a pattern match on d.
func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

// Matcher is the case selector returned by DimenT.Match.
type Matcher struct {
	dimen DimenT
}

// IsKind matches dimensions of the same kind as d.
func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case m.dimen.flags == dimenNone && d.flags == dimenNone:
		return m
	case (m.dimen.flags&kindMask > 0) && (m.dimen.flags&kindMask) == (d.flags&kindMask):
		return m
	case (m.dimen.flags&relativeMask > 0) && (d.flags&relativeMask > 0):
		if (m.dimen.flags&dimenPercent > 0) != (d.flags&dimenPercent > 0) {
			return nil
		}
		return m
	}
	return nil
}

// Just matches fixed dimensions and extracts the value into du, if du is non-nil.
func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.flags&dimenAbsolute > 0 {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

// Percentage matches relative dimensions and extracts the value into p, if p is non-nil.
func (m *Matcher) Percentage(p *Percent) *Matcher {
	if m.dimen.flags&dimenPercent > 0 {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

// DimenPatterns holds one result per kind of dimension.
type DimenPatterns[T any] struct {
	Auto    T
	Just    T
	Percent T
	Default T
}

// DimenPattern starts an expression match on d.
func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

// MatchExpr is part of pattern matching for DimenT and intended to be
// instantiated using DimenPattern only.
type MatchExpr[T any] struct {
	dimen DimenT
}

// OneOf selects the pattern matching the dimension's kind.
func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	switch {
	case m.dimen.IsAuto():
		return patterns.Auto
	case m.dimen.IsAbsolute():
		return patterns.Just
	case m.dimen.IsPercent():
		return patterns.Percent
	}
	return patterns.Default
}

// With extracts a fixed value into du.
func (m *MatchExpr[T]) With(du *dimen.DU) *MatchExpr[T] {
	*du = m.dimen.d
	return m
}

// Const returns x.
func (m *MatchExpr[T]) Const(x T) T {
	return x
}

// GoString is used by %#v.
func (d DimenT) GoString() string {
	return fmt.Sprintf("css.DimenT{%s}", d.String())
}
