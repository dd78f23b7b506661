package shape

import (
	"fmt"
	"math"

	"draw-pipe/pkg/geometry"
)

const (
	// circleOutlinePoints is the sampling density for circular boundaries.
	circleOutlinePoints = 100

	// arcPoints is the per-corner sampling density for fillet arcs.
	arcPoints = 15

	// splineOutlinePoints is the sampling density for spline boundaries.
	splineOutlinePoints = 100
)

// Outline samples the boundary polygon of a shape. Circle and Rect outlines
// are generated counterclockwise; the clockwise flag reverses the vertex
// order, which callers pairing an outer and inner ring into a single path
// with a hole use for the inner ring.
func Outline(s Shape, clockwise bool) []geometry.Point2D {
	var pts []geometry.Point2D
	switch v := s.(type) {
	case Circle:
		pts = geometry.GenerateCirclePoints(v.Origin.X, v.Origin.Y, v.Diameter/2, circleOutlinePoints)
	case Rect:
		pts = roundedRectOutline(v)
	case SplineProfile:
		pts = SplinePoints(v, splineOutlinePoints)
	default:
		panic(fmt.Sprintf("unhandled shape variant %T", s))
	}

	if clockwise {
		pts = geometry.Reverse(pts)
	}
	return pts
}

// roundedRectOutline sweeps the four fillet arcs counterclockwise starting at
// the top-right corner; the straight edges are the implicit segments between
// consecutive arc endpoints. The fillet radius is clamped before sweeping.
func roundedRectOutline(r Rect) []geometry.Point2D {
	hw, hh := r.Width/2, r.Length/2
	rad := clampedFillet(r)

	corners := [4]struct {
		cx, cy, start float64
	}{
		{r.Origin.X + hw - rad, r.Origin.Y + hh - rad, 0},
		{r.Origin.X - hw + rad, r.Origin.Y + hh - rad, math.Pi / 2},
		{r.Origin.X - hw + rad, r.Origin.Y - hh + rad, math.Pi},
		{r.Origin.X + hw - rad, r.Origin.Y - hh + rad, 3 * math.Pi / 2},
	}

	out := make([]geometry.Point2D, 0, 4*arcPoints)
	for _, c := range corners {
		for k := 0; k < arcPoints; k++ {
			theta := c.start + (math.Pi/2)*float64(k)/float64(arcPoints-1)
			out = append(out, geometry.Point2D{
				X: c.cx + rad*math.Cos(theta),
				Y: c.cy + rad*math.Sin(theta),
			})
		}
	}
	return out
}
