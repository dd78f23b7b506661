package geometry

// SignedPolygonArea computes the signed area of a polygon via the shoelace
// formula, wrapping the last vertex back to the first. Counterclockwise
// winding yields a positive value.
func SignedPolygonArea(polygon []Point2D) float64 {
	if len(polygon) < 3 {
		return 0
	}

	var sum float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return sum / 2
}

// PolygonArea computes the absolute enclosed area of a polygon regardless of
// winding direction.
func PolygonArea(polygon []Point2D) float64 {
	a := SignedPolygonArea(polygon)
	if a < 0 {
		return -a
	}
	return a
}

// Reverse returns a copy of the polygon with vertex order reversed,
// flipping its winding direction. The input is not modified.
func Reverse(polygon []Point2D) []Point2D {
	out := make([]Point2D, len(polygon))
	for i, p := range polygon {
		out[len(polygon)-1-i] = p
	}
	return out
}
