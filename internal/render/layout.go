package render

import (
	"math"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/shape"
	"draw-pipe/pkg/geometry"
)

// CommonLimits computes a shared square world window covering every outline
// of every stage, expanded by a fractional padding. Rendering all stages into
// the same window keeps their scales comparable.
func CommonLimits(pipes []pipe.Pipe, padding float64) geometry.Rect {
	var pts []geometry.Point2D
	for _, p := range pipes {
		pts = append(pts, shape.Outline(p.Outer, false)...)
		pts = append(pts, shape.Outline(p.Inner, false)...)
	}
	if len(pts) == 0 {
		return geometry.Rect{X: -1, Y: -1, Width: 2, Height: 2}
	}

	box := geometry.BoundingBox(pts)

	// Square envelope centered on the data, then padded.
	side := math.Max(box.Width, box.Height)
	if side == 0 {
		side = 1
	}
	side *= 1 + 2*padding
	center := box.Center()
	return geometry.Rect{
		X:      center.X - side/2,
		Y:      center.Y - side/2,
		Width:  side,
		Height: side,
	}
}

// worldToPixel maps the world window onto a size x size pixel image with the
// Y axis flipped so world-up is image-up.
func worldToPixel(limits geometry.Rect, size int) geometry.AffineTransform {
	scale := float64(size) / limits.Width
	// px = (wx - limits.X) * scale
	// py = size - (wy - limits.Y) * scale
	return geometry.Translation(-limits.X*scale, float64(size)+limits.Y*scale).
		Compose(geometry.Scale(scale, -scale))
}
