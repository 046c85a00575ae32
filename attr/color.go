package attr

import (
	"fmt"
	"image/color"

	"github.com/npillmayer/uistate/maybe"
)

// Color is a non-premultiplied 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Transparent is the default background: all channels zero.
var Transparent = Color{}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex returns c in the form #rrggbbaa.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// IsTransparent is true if c has an alpha of 0.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return c.Hex()
}

var palette = map[string]Color{
	"red":    {0xff, 0x00, 0x00, 0xff},
	"green":  {0x00, 0xff, 0x00, 0xff},
	"blue":   {0x00, 0x00, 0xff, 0xff},
	"yellow": {0xff, 0xff, 0x00, 0xff},
	"black":  {0x00, 0x00, 0x00, 0xff},
	"gray":   {0x88, 0x88, 0x88, 0xff},
}

var colorNames = func() map[Color]string {
	m := make(map[Color]string, len(palette)+1)
	for name, c := range palette {
		m[c] = name
	}
	m[Transparent] = "transparent"
	return m
}()

// LookupColor finds a color by name in the fixed palette
// (red, green, blue, yellow, black, gray).
// Names are matched exactly; anything else is Nothing.
func LookupColor(name string) maybe.Maybe[Color] {
	c, ok := palette[name]
	return maybe.FromPair(c, ok)
}

// PaletteNames returns the names of the palette colors.
func PaletteNames() []string {
	return []string{"red", "green", "blue", "yellow", "black", "gray"}
}
