package attr_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/uistate/attr"
)

func TestColorPalette(t *testing.T) {
	red, ok := attr.Value("red").Color().Get()
	assert.True(t, ok)
	assert.Equal(t, attr.Color{R: 0xff, A: 0xff}, red)
	assert.Equal(t, "#ff0000ff", red.Hex())
	assert.Equal(t, "red", red.String())

	gray, ok := attr.LookupColor("gray").Get()
	assert.True(t, ok)
	assert.Equal(t, "#888888ff", gray.Hex())

	for _, name := range attr.PaletteNames() {
		assert.True(t, attr.LookupColor(name).IsJust(), "palette name %q", name)
	}
}

func TestColorNoMatch(t *testing.T) {
	for _, name := range []string{"purple", "Red", "", "#ff0000", "grey"} {
		assert.False(t, attr.Value(name).Color().IsJust(), "name %q", name)
	}
}

func TestColorIsImageColor(t *testing.T) {
	var c color.Color = attr.Color{R: 0xff, G: 0xff, A: 0xff}
	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)
	assert.True(t, attr.Transparent.IsTransparent())
	assert.Equal(t, "transparent", attr.Transparent.String())
}
