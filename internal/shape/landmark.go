package shape

import (
	"fmt"
	"math"

	"draw-pipe/pkg/geometry"
)

// LandmarkCount is the number of canonical comparison points per shape.
const LandmarkCount = 5

// LandmarkNames are the display labels for the five landmarks, in order.
var LandmarkNames = [LandmarkCount]string{"Tp", "TpRt", "Rt", "BtRt", "Bt"}

// Landmarks reduces a shape to its five canonical comparison points: Top,
// Top-Right, Right, Bottom-Right, Bottom. Two shapes of the same variant can
// then be compared landmark-by-landmark regardless of their parameters.
//
// Circle landmarks sit at polar angles 90, 45, 0, -45, -90 degrees. Rect
// landmarks use the edge midpoints and the 45-degree points on the right-side
// fillet arcs (clamped radius). SplineProfile landmarks are the first five of
// the eight generated vertices, exact control-derived points rather than
// curve samples.
func Landmarks(s Shape) []geometry.Point2D {
	switch v := s.(type) {
	case Circle:
		r := v.Diameter / 2
		angles := [LandmarkCount]float64{90, 45, 0, -45, -90}
		pts := make([]geometry.Point2D, LandmarkCount)
		for i, deg := range angles {
			rad := deg * math.Pi / 180
			pts[i] = geometry.Point2D{
				X: v.Origin.X + r*math.Cos(rad),
				Y: v.Origin.Y + r*math.Sin(rad),
			}
		}
		return pts
	case Rect:
		ox, oy := v.Origin.X, v.Origin.Y
		hw, hh := v.Width/2, v.Length/2
		r := clampedFillet(v)
		arcOffset := r / math.Sqrt2
		return []geometry.Point2D{
			{X: ox, Y: oy + hh},
			{X: ox + hw - r + arcOffset, Y: oy + hh - r + arcOffset},
			{X: ox + hw, Y: oy},
			{X: ox + hw - r + arcOffset, Y: oy - hh + r - arcOffset},
			{X: ox, Y: oy - hh},
		}
	case SplineProfile:
		return Vertices(v)[:LandmarkCount]
	default:
		panic(fmt.Sprintf("unhandled shape variant %T", s))
	}
}
