// Package render rasterizes pipe cross-sections into RGBA images: single
// stages, initial/final comparisons, and full process strips. It is a pure
// consumer of already-computed geometry; no metric is derived here that the
// core does not already expose.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/process"
	"draw-pipe/internal/shape"
	"draw-pipe/pkg/colorutil"
	"draw-pipe/pkg/geometry"
)

// Options configures cross-section rendering.
type Options struct {
	Size    int     // output image side length in pixels
	Padding float64 // fractional world-window padding around the outlines
	Markers bool    // draw the five landmark dots
	Labels  bool    // draw metric text labels
	Grid    bool    // draw center axes
	Fill    color.RGBA
}

// DefaultOptions returns the rendering defaults.
func DefaultOptions() Options {
	return Options{
		Size:    800,
		Padding: 0.1,
		Markers: true,
		Labels:  true,
		Grid:    true,
		Fill:    colorutil.Wall,
	}
}

// markerRadius is the landmark dot radius in pixels.
const markerRadius = 4

// RenderPipe rasterizes one stage into a square image.
func RenderPipe(p pipe.Pipe, opts Options) *image.RGBA {
	limits := CommonLimits([]pipe.Pipe{p}, opts.Padding)
	img := newCanvas(opts.Size, limits, opts)
	drawStage(img, p, limits, opts, opts.Fill)

	if opts.Labels {
		drawText(img, 8, 16, fmt.Sprintf("area %.1f  ecc %.2f", p.Area(), p.Eccentricity()), colorutil.Black)
		drawThicknessLabels(img, p, 30)
	}
	return img
}

// RenderComparison overlays an initial and final stage in one window and
// annotates the transition metrics.
func RenderComparison(initial, final pipe.Pipe, opts Options) *image.RGBA {
	limits := CommonLimits([]pipe.Pipe{initial, final}, opts.Padding)
	img := newCanvas(opts.Size, limits, opts)

	drawStage(img, initial, limits, opts, opts.Fill)
	drawStage(img, final, limits, opts, colorutil.WallFinal)

	if opts.Labels {
		drawComparisonLabels(img, initial, final)
	}
	return img
}

// RenderProcess renders every stage side by side as a horizontal strip.
func RenderProcess(pipes []pipe.Pipe, opts Options) *image.RGBA {
	if len(pipes) == 0 {
		return image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	}

	// One shared window so stage-to-stage shrink is visible at a glance.
	limits := CommonLimits(pipes, opts.Padding)
	strip := image.NewRGBA(image.Rect(0, 0, opts.Size*len(pipes), opts.Size))

	for i, p := range pipes {
		tile := newCanvas(opts.Size, limits, opts)
		drawStage(tile, p, limits, opts, opts.Fill)
		if opts.Labels {
			drawText(tile, 8, 16, fmt.Sprintf("stage %d", i+1), colorutil.Black)
		}
		blit(strip, tile, i*opts.Size, 0)
	}
	return strip
}

// newCanvas creates a white square canvas with an optional grid and center
// axes.
func newCanvas(size int, limits geometry.Rect, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: colorutil.White}, image.Point{}, draw.Src)

	if opts.Grid {
		// Light quarter-pitch grid, overdrawn by the axes at the origin.
		for i := 1; i < 4; i++ {
			at := i * size / 4
			drawLine(img, at, 0, at, size-1, colorutil.Grid)
			drawLine(img, 0, at, size-1, at, colorutil.Grid)
		}
		tf := worldToPixel(limits, size)
		origin := tf.Apply(geometry.Point2D{})
		drawLine(img, int(origin.X), 0, int(origin.X), size-1, colorutil.Axis)
		drawLine(img, 0, int(origin.Y), size-1, int(origin.Y), colorutil.Axis)
	}
	return img
}

// drawStage fills the annular wall and strokes both boundaries. The outer
// ring is traversed counterclockwise and the inner clockwise so the pair
// forms one closed path with a hole.
func drawStage(img *image.RGBA, p pipe.Pipe, limits geometry.Rect, opts Options, fill color.RGBA) {
	size := img.Bounds().Dx()
	tf := worldToPixel(limits, size)

	outer := transformPoints(shape.Outline(p.Outer, false), tf)
	inner := transformPoints(shape.Outline(p.Inner, true), tf)

	fillRing(img, outer, inner, fill)
	strokePolygon(img, outer, colorutil.Darken(fill, 0.4))
	strokePolygon(img, inner, colorutil.Darken(fill, 0.4))

	if opts.Markers {
		for _, ring := range []shape.Shape{p.Outer, p.Inner} {
			for _, lm := range transformPoints(shape.Landmarks(ring), tf) {
				fillDot(img, int(lm.X), int(lm.Y), markerRadius, colorutil.Marker)
			}
		}
	}
}

func drawComparisonLabels(img *image.RGBA, initial, final pipe.Pipe) {
	analysis := process.NewAnalysis([]pipe.Pipe{initial, final})

	y := 16
	if areas, err := analysis.AreaReductions(); err == nil && len(areas) == 1 {
		drawText(img, 8, y, fmt.Sprintf("area reduction %.1f%%", areas[0]*100), colorutil.Black)
		y += 14
	}
	if diffs := analysis.EccentricityDiffs(); len(diffs) == 1 {
		drawText(img, 8, y, fmt.Sprintf("ecc delta %+.3f", diffs[0]), colorutil.Black)
		y += 14
	}
	if th, err := analysis.ThicknessReductions(); err == nil && len(th) == 1 {
		for i, r := range th[0] {
			drawText(img, 8, y, fmt.Sprintf("%-4s %.1f%%", shape.LandmarkNames[i], r*100), colorutil.Black)
			y += 14
		}
	}
}

func drawThicknessLabels(img *image.RGBA, p pipe.Pipe, startY int) {
	th, err := p.Thickness()
	if err != nil {
		// Mixed-variant stages have no wall thickness to label.
		return
	}
	y := startY
	for i, v := range th {
		drawText(img, 8, y, fmt.Sprintf("%-4s %.2f", shape.LandmarkNames[i], v), colorutil.Black)
		y += 14
	}
}

func transformPoints(pts []geometry.Point2D, tf geometry.AffineTransform) []geometry.Point2D {
	out := make([]geometry.Point2D, len(pts))
	for i, p := range pts {
		out[i] = tf.Apply(p)
	}
	return out
}

// fillRing scanline-fills the outer polygon minus the inner polygon using the
// even-odd rule over the combined edge set.
func fillRing(img *image.RGBA, outer, inner []geometry.Point2D, c color.RGBA) {
	type edge struct{ x1, y1, x2, y2 float64 }
	var edges []edge
	appendEdges := func(poly []geometry.Point2D) {
		n := len(poly)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			edges = append(edges, edge{poly[i].X, poly[i].Y, poly[j].X, poly[j].Y})
		}
	}
	appendEdges(outer)
	appendEdges(inner)

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		sy := float64(y) + 0.5

		var xs []float64
		for _, e := range edges {
			if (e.y1 > sy) == (e.y2 > sy) {
				continue
			}
			t := (sy - e.y1) / (e.y2 - e.y1)
			xs = append(xs, e.x1+t*(e.x2-e.x1))
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			x1 := int(math.Ceil(xs[i] - 0.5))
			x2 := int(math.Floor(xs[i+1] - 0.5))
			for x := x1; x <= x2; x++ {
				if x >= bounds.Min.X && x < bounds.Max.X {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
}

// strokePolygon draws the closed boundary with Bresenham segments.
func strokePolygon(img *image.RGBA, poly []geometry.Point2D, c color.RGBA) {
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		drawLine(img, int(poly[i].X), int(poly[i].Y), int(poly[j].X), int(poly[j].Y), c)
	}
}

// drawLine draws a line using Bresenham's algorithm.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	bounds := img.Bounds()
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		if x1 >= bounds.Min.X && x1 < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, c)
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillDot fills a small filled circle.
func fillDot(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	bounds := img.Bounds()
	for y := cy - r; y <= cy+r; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := cx - r; x <= cx+r; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawText renders a label with the fixed 7x13 bitmap face. The y coordinate
// is the text baseline.
func drawText(img *image.RGBA, x, y int, text string, c color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// blit copies src into dst at the given offset.
func blit(dst, src *image.RGBA, ox, oy int) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(ox+x, oy+y, src.RGBAAt(x, y))
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
