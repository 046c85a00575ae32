package attr

import "fmt"

type sizeKind uint8

const (
	sizeAuto sizeKind = iota // zero value
	sizePercent
	sizeManual
)

// SizeMode is an option type for the sizing of one axis of a box.
// The zero value is Auto. SizeModes are comparable with ==, which
// compares structurally.
type SizeMode struct {
	kind sizeKind
	n    int
}

/*
type SizeMode
	= Auto
	| Percentage int
	| Manual int
*/

// Auto creates a size mode without an explicit size.
func Auto() SizeMode {
	return SizeMode{}
}

// Percentage creates a size mode relative to the available space.
func Percentage(p int) SizeMode {
	return SizeMode{kind: sizePercent, n: p}
}

// Manual creates a size mode with an absolute number of units.
func Manual(v int) SizeMode {
	return SizeMode{kind: sizeManual, n: v}
}

// IsAuto returns true if m is Auto.
func (m SizeMode) IsAuto() bool {
	return m.kind == sizeAuto
}

// IsPercentage returns true if m is a Percentage.
func (m SizeMode) IsPercentage() bool {
	return m.kind == sizePercent
}

// IsManual returns true if m is Manual.
func (m SizeMode) IsManual() bool {
	return m.kind == sizeManual
}

// ManualOr returns the unit count of a Manual size mode, or def otherwise.
func (m SizeMode) ManualOr(def int) int {
	if m.kind == sizeManual {
		return m.n
	}
	return def
}

func (m SizeMode) String() string {
	switch m.kind {
	case sizePercent:
		return fmt.Sprintf("Percentage(%d)", m.n)
	case sizeManual:
		return fmt.Sprintf("Manual(%d)", m.n)
	}
	return "Auto"
}

// ---------------------------------------------------------------------------

// Match starts a pattern match on m:
//
//    var n int
//    switch m := mode.Match(); m {
//    case m.Manual(&n): …
//    case m.Percentage(&n): …
//    case m.Auto(): …
//    }
func (m SizeMode) Match() *SizeMatcher {
	return &SizeMatcher{mode: m}
}

// SizeMatcher is the case selector returned by SizeMode.Match.
type SizeMatcher struct {
	mode SizeMode
}

// Auto matches Auto.
func (m *SizeMatcher) Auto() *SizeMatcher {
	if m.mode.kind == sizeAuto {
		return m
	}
	return nil
}

// Percentage matches a Percentage and extracts its value into p, if p is non-nil.
func (m *SizeMatcher) Percentage(p *int) *SizeMatcher {
	if m.mode.kind == sizePercent {
		if p != nil {
			*p = m.mode.n
		}
		return m
	}
	return nil
}

// Manual matches a Manual size and extracts its value into v, if v is non-nil.
func (m *SizeMatcher) Manual(v *int) *SizeMatcher {
	if m.mode.kind == sizeManual {
		if v != nil {
			*v = m.mode.n
		}
		return m
	}
	return nil
}
