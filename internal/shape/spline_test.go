package shape

import (
	"math"
	"testing"

	"draw-pipe/pkg/geometry"
)

func testProfile() SplineProfile {
	return SplineProfile{
		V1: geometry.NewPoint2D(0, 25.8),
		V2: geometry.NewPoint2D(19.4, 19.4),
		V3: geometry.NewPoint2D(25.8, 0),
	}
}

func TestVerticesCycle(t *testing.T) {
	p := SplineProfile{
		Origin: geometry.NewPoint2D(1, 2),
		V1:     geometry.NewPoint2D(0, 10),
		V2:     geometry.NewPoint2D(7, 8),
		V3:     geometry.NewPoint2D(9, 0),
	}
	got := Vertices(p)
	want := []geometry.Point2D{
		{X: 1, Y: 12},
		{X: 8, Y: 10},
		{X: 10, Y: 2},
		{X: 8, Y: -6},
		{X: 1, Y: -8},
		{X: -6, Y: -6},
		{X: -8, Y: 2},
		{X: -6, Y: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d vertices, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("vertex %d = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestVerticesMirrorSymmetry(t *testing.T) {
	verts := Vertices(testProfile())

	contains := func(q geometry.Point2D) bool {
		for _, v := range verts {
			if within(v.X, q.X, 1e-12) && within(v.Y, q.Y, 1e-12) {
				return true
			}
		}
		return false
	}

	for i, v := range verts {
		if !contains(v.MirrorX(0)) {
			t.Errorf("vertex %d: X-axis mirror %v is not a generated vertex", i, v.MirrorX(0))
		}
		if !contains(v.MirrorY(0)) {
			t.Errorf("vertex %d: Y-axis mirror %v is not a generated vertex", i, v.MirrorY(0))
		}
	}
}

func TestSplineInterpolatesVertices(t *testing.T) {
	verts := Vertices(testProfile())
	curve := fitPeriodicCurve(verts)

	for i, v := range verts {
		got := curve.at(float64(i))
		if !within(got.X, v.X, 1e-9) || !within(got.Y, v.Y, 1e-9) {
			t.Errorf("curve at t=%d gave %v, expected vertex %v", i, got, v)
		}
	}
}

func TestSplineClosure(t *testing.T) {
	pts := SplinePoints(testProfile(), 250)
	first, last := pts[0], pts[len(pts)-1]
	if !within(first.X, last.X, 1e-9) || !within(first.Y, last.Y, 1e-9) {
		t.Errorf("curve is not closed: first %v, last %v", first, last)
	}
}

func TestSplineSeamSmoothness(t *testing.T) {
	curve := fitPeriodicCurve(Vertices(testProfile()))

	// Finite differences straddling the seam should agree with ones just
	// inside it; a C1 discontinuity would show up at far larger magnitude.
	h := 1e-5
	before := curve.at(8 - h)
	after := curve.at(h)
	at0 := curve.at(0)

	dxIn := (at0.X - before.X) / h
	dxOut := (after.X - at0.X) / h
	if !within(dxIn, dxOut, 1e-2) {
		t.Errorf("x slope jumps across the seam: %v vs %v", dxIn, dxOut)
	}
	dyIn := (at0.Y - before.Y) / h
	dyOut := (after.Y - at0.Y) / h
	if !within(dyIn, dyOut, 1e-2) {
		t.Errorf("y slope jumps across the seam: %v vs %v", dyIn, dyOut)
	}
}

func TestSplineCurveSymmetry(t *testing.T) {
	curve := fitPeriodicCurve(Vertices(testProfile()))

	for _, tt := range []float64{0.25, 0.5, 1.3, 2.75, 3.9} {
		p := curve.at(tt)

		// Mirror about the X axis: t -> 4 - t
		q := curve.at(4 - tt)
		if !within(p.X, q.X, 1e-9) || !within(p.Y, -q.Y, 1e-9) {
			t.Errorf("t=%v: X-axis mirror mismatch %v vs %v", tt, p, q)
		}

		// Mirror about the Y axis: t -> 8 - t
		q = curve.at(8 - tt)
		if !within(p.X, -q.X, 1e-9) || !within(p.Y, q.Y, 1e-9) {
			t.Errorf("t=%v: Y-axis mirror mismatch %v vs %v", tt, p, q)
		}
	}
}

func TestSplineAreaApproximatesCircle(t *testing.T) {
	// Control points on a circle of radius 20 should reproduce the circle
	// closely; the interpolation error at 8 knots is well under one percent.
	r := 20.0
	p := SplineProfile{
		V1: geometry.NewPoint2D(0, r),
		V2: geometry.NewPoint2D(r/math.Sqrt2, r/math.Sqrt2),
		V3: geometry.NewPoint2D(r, 0),
	}
	want := math.Pi * r * r
	if a := Area(p); math.Abs(a-want) > 0.015*want {
		t.Errorf("got area %v, expected within 1.5%% of %v", a, want)
	}
}

func TestSplineAreaScaling(t *testing.T) {
	base := SplineProfile{
		Origin: geometry.NewPoint2D(0, 0.9),
		V1:     geometry.NewPoint2D(0, 38.55),
		V2:     geometry.NewPoint2D(30.1, 30.2),
		V3:     geometry.NewPoint2D(37.4, 0),
	}
	s := 2.5
	scaled := SplineProfile{
		Origin: base.Origin.Scale(s),
		V1:     base.V1.Scale(s),
		V2:     base.V2.Scale(s),
		V3:     base.V3.Scale(s),
	}

	a := Area(base)
	if a <= 0 {
		t.Fatalf("expected positive area, got %v", a)
	}
	got := Area(scaled)
	want := s * s * a
	if math.Abs(got-want) > 1e-9*want {
		t.Errorf("scaled area %v, expected %v", got, want)
	}
}

func TestSplineAreaConverges(t *testing.T) {
	// The shoelace integral over the fitted curve must stabilize as the
	// sample density grows.
	curve := fitPeriodicCurve(Vertices(testProfile()))
	coarse := geometry.PolygonArea(curve.sample(500))
	fine := geometry.PolygonArea(curve.sample(4000))
	if math.Abs(coarse-fine) > 1e-4*fine {
		t.Errorf("area has not converged: %v at n=500 vs %v at n=4000", coarse, fine)
	}
}
