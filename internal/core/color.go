package core

import (
	"fmt"
	"image/color"
)

// Color is a 4-component colour with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Predefined colours for game elements.
var (
	ColorBlack = Color{0, 0, 0, 1}
	ColorWhite = Color{1, 1, 1, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}
	ColorGray  = Color{0.5, 0.5, 0.5, 1}
)

// RGBA converts the colour to 8-bit channels, clamping out-of-range values.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(c.A),
	}
}

// Hex returns the colour as "#rrggbb". Alpha is ignored.
func (c Color) Hex() string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
