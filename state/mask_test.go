package state

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/uistate/attr"
)

func TestMaskDeclarations(t *testing.T) {
	assert.Equal(t, []string{"height", "overflow", "padding", "width"}, SizeMask.Names())
	assert.True(t, SizeMask.DependsOnText())
	assert.True(t, SizeMask.DependsOnTag())
	assert.Equal(t, []string{"background"}, StyleMask.Names())
	assert.True(t, StyleMask.DependsOnText())
	assert.False(t, StyleMask.DependsOnTag())
	assert.Equal(t, "[background +text]", StyleMask.String())

	names := SizeMask.Names()
	names[0] = "garbage"
	assert.True(t, SizeMask.Contains("height"), "Names must return a copy")
}

func TestMaskFilterKeepsOrderAndDuplicates(t *testing.T) {
	attrs := []attr.Attribute{
		attr.A("width", "1"), attr.A("id", "x"), attr.A("padding", "2"), attr.A("width", "3"),
	}
	filtered := SizeMask.Filter(attrs)
	assert.Equal(t, []attr.Attribute{attrs[0], attrs[2], attrs[3]}, filtered)
	assert.Empty(t, StyleMask.Filter(attrs))
}

func TestMaskAffected(t *testing.T) {
	assert.True(t, SizeMask.Affected([]string{"id", "padding"}, false, false))
	assert.False(t, SizeMask.Affected([]string{"id", "background"}, false, false))
	assert.True(t, SizeMask.Affected(nil, true, false))
	assert.True(t, SizeMask.Affected(nil, false, true))
	assert.False(t, StyleMask.Affected(nil, false, true))
	assert.True(t, StyleMask.Affected(nil, true, false))
	assert.False(t, AttributeMask{}.Affected([]string{"width"}, true, true))
}

// Every attribute name an evaluator consumes must be declared by its mask:
// attributes outside the mask must not influence the result, and a name
// which does influence the result must be in the mask.
func TestMaskCompleteness(t *testing.T) {
	rnd := rand.New(rand.NewSource(4711))
	pool := []string{
		"width", "height", "padding", "overflow", "background",
		"margin", "color", "border", "display", "id", "class", "onclick",
	}
	values := []string{"red", "blue", "purple", "10", "3", "50%", "stretch", "auto", "7"}
	numbers := []string{"10", "3", "7"}
	for i := 0; i < 500; i++ {
		var attrs []attr.Attribute
		for j := rnd.Intn(6); j >= 0; j-- {
			name := pool[rnd.Intn(len(pool))]
			if rnd.Intn(4) == 0 {
				name = fmt.Sprintf("x-%d", rnd.Intn(1000))
			}
			value := values[rnd.Intn(len(values))]
			switch name {
			case AttrWidth, AttrHeight:
				value = values[3+rnd.Intn(len(values)-3)] // size grammar only
			case AttrPadding, AttrOverflow:
				value = numbers[rnd.Intn(len(numbers))]
			}
			attrs = append(attrs, attr.A(name, value))
		}
		n := node("div", attrs...)
		full, _, errFull := EvaluateSize(n, nil, Size{}, nil)
		masked, _, errMasked := EvaluateSize(node("div", SizeMask.Filter(attrs)...), nil, Size{}, nil)
		if errFull != nil || errMasked != nil {
			t.Fatalf("unexpected errors %v / %v for %v", errFull, errMasked, attrs)
		}
		if full != masked {
			t.Errorf("size depends on unmasked attributes: %v", attrs)
		}
		sFull, _ := EvaluateStyle(n, Style{}, nil)
		sMasked, _ := EvaluateStyle(node("div", StyleMask.Filter(attrs)...), Style{}, nil)
		if sFull != sMasked {
			t.Errorf("style depends on unmasked attributes: %v", attrs)
		}
	}
	// single attributes which change a result must be masked
	for _, name := range pool {
		for _, value := range values {
			n := node("div", attr.A(name, value))
			if size, _, err := EvaluateSize(n, nil, Size{}, nil); err == nil && size != (Size{}) {
				assert.True(t, SizeMask.Contains(name), "size consumes %q outside its mask", name)
			}
			if style, _ := EvaluateStyle(n, Style{}, nil); style != (Style{}) {
				assert.True(t, StyleMask.Contains(name), "style consumes %q outside its mask", name)
			}
		}
	}
}
