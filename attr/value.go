package attr

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/uistate/maybe"
)

// ErrInvalidValue is wrapped by every failed conversion of a raw value.
var ErrInvalidValue = errors.New("invalid attribute value")

// Value is a raw value for a node attribute. For example, with
//
//     width: "50%"
//
// a value of "50%" is set. The main purpose of wrapping the raw string
// into type Value is to provide a set of convenient type conversion
// functions.
type Value string

// NullValue is an empty attribute value.
const NullValue Value = ""

func (v Value) String() string {
	return string(v)
}

// IsEmpty checks wether a value is the null-string.
func (v Value) IsEmpty() bool {
	return v == NullValue
}

// Attribute is a (name, value) pair as declared on a node.
type Attribute struct {
	Name  string
	Value Value
}

// A creates an attribute. Mostly useful for tests and fixtures.
func A(name string, value string) Attribute {
	return Attribute{Name: name, Value: Value(value)}
}

func (a Attribute) String() string {
	return fmt.Sprintf("%s=%q", a.Name, string(a.Value))
}

// Int converts v to a signed 32-bit integer.
func (v Value) Int() (int, error) {
	n, err := strconv.ParseInt(string(v), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, string(v))
	}
	return int(n), nil
}

// SizeMode converts v to a sizing mode:
//
//     "stretch"  => Percentage(100)
//     "auto"     => Auto
//     "<n>%"     => Percentage(n)
//     "<n>"      => Manual(n)
//
// Every '%' is removed before the numeric part is parsed, so "5%0" is
// read as 50 percent.
func (v Value) SizeMode() (SizeMode, error) {
	s := string(v)
	switch {
	case s == "stretch":
		return Percentage(100), nil
	case s == "auto":
		return Auto(), nil
	case strings.Contains(s, "%"):
		p, err := Value(strings.ReplaceAll(s, "%", "")).Int()
		if err != nil {
			return Auto(), fmt.Errorf("%w: %q is not a percentage", ErrInvalidValue, s)
		}
		return Percentage(p), nil
	}
	n, err := v.Int()
	if err != nil {
		return Auto(), err
	}
	return Manual(n), nil
}

// Padding reads v as a total padding and splits it onto the four sides.
func (v Value) Padding() (Padding, error) {
	total, err := v.Int()
	if err != nil {
		return Padding{}, err
	}
	return SplitPadding(total), nil
}

// Color looks up v in the named palette. Unknown names produce Nothing.
func (v Value) Color() maybe.Maybe[Color] {
	c := LookupColor(string(v))
	if !c.IsJust() {
		tracer().Debugf("no palette entry for color %q", string(v))
	}
	return c
}

// --- Padding ---------------------------------------------------------------

// Padding holds the padding of a box, per side.
type Padding struct {
	Top, Right, Bottom, Left int
}

// SplitPadding distributes a total padding value onto all four sides.
// Every side gets total/2, truncated towards zero. An odd total thus
// loses one unit: 11 gives (5, 5, 5, 5).
func SplitPadding(total int) Padding {
	side := total / 2
	return Padding{Top: side, Right: side, Bottom: side, Left: side}
}

// IsZero is true for (0, 0, 0, 0).
func (p Padding) IsZero() bool {
	return p == Padding{}
}

func (p Padding) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", p.Top, p.Right, p.Bottom, p.Left)
}
