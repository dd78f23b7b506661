// Package colorutil provides the shared render palette and color helpers.
package colorutil

import (
	"image/color"
)

// Common colors used by the cross-section renderer.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// Wall is the fill used for the annular tube wall.
	Wall = color.RGBA{R: 0x4A, G: 0x7A, B: 0xA5, A: 255}

	// WallFinal is the overlay fill for the later stage of a comparison.
	WallFinal = color.RGBA{R: 0xC6, G: 0x5D, B: 0x3B, A: 255}

	// Marker is the landmark dot color.
	Marker = color.RGBA{R: 0xFF, G: 0xD5, B: 0x00, A: 255}

	// Grid is the background grid line color.
	Grid = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 255}

	// Axis is the center axis line color.
	Axis = color.RGBA{R: 0xB0, G: 0xB0, B: 0xB0, A: 255}
)

// Darken reduces the brightness of a color by the given factor in [0, 1].
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * (1 - factor)),
		G: uint8(float64(c.G) * (1 - factor)),
		B: uint8(float64(c.B) * (1 - factor)),
		A: c.A,
	}
}
