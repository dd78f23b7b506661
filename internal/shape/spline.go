package shape

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"draw-pipe/pkg/geometry"
)

const (
	// splineVertexCount is the number of boundary vertices generated by
	// mirroring the three control offsets across both axes.
	splineVertexCount = 8

	// splineAreaSamples is the dense sample count used for area integration.
	// Tests assert convergence tolerances rather than this exact count.
	splineAreaSamples = 1000
)

// Vertices generates the 8-vertex cycle of a spline profile by mirroring the
// control offsets across both local axes, offset by the profile origin. The
// order is fixed: starting at the top of the Y axis and sweeping clockwise
// through the first quadrant, i.e.
// (0,y1), (x2,y2), (x3,0), (x2,-y2), (0,-y1), (-x2,-y2), (-x3,0), (-x2,y2).
func Vertices(p SplineProfile) []geometry.Point2D {
	ox, oy := p.Origin.X, p.Origin.Y
	x2, y2 := p.V2.X, p.V2.Y
	return []geometry.Point2D{
		{X: p.V1.X + ox, Y: p.V1.Y + oy},
		{X: x2 + ox, Y: y2 + oy},
		{X: p.V3.X + ox, Y: p.V3.Y + oy},
		{X: x2 + ox, Y: -y2 + oy},
		{X: ox, Y: -p.V1.Y + oy},
		{X: -x2 + ox, Y: -y2 + oy},
		{X: -p.V3.X + ox, Y: oy},
		{X: -x2 + ox, Y: y2 + oy},
	}
}

// periodicCurve is a closed C2 cubic spline through the 8 profile vertices,
// parameterized over t in [0, 8] with the seam at t=0 == t=8. The x and y
// coordinates are fitted independently.
type periodicCurve struct {
	xs, ys [splineVertexCount]float64 // vertex values
	mx, my [splineVertexCount]float64 // second-derivative moments
}

// fitPeriodicCurve solves the cyclic moment system for both coordinates.
// With unit knot spacing the equations are
// m[i-1]/6 + 2m[i]/3 + m[i+1]/6 = v[i+1] - 2v[i] + v[i-1], indices mod 8,
// which enforces matching value, slope, and curvature across the seam.
func fitPeriodicCurve(verts []geometry.Point2D) *periodicCurve {
	var c periodicCurve
	for i, v := range verts {
		c.xs[i] = v.X
		c.ys[i] = v.Y
	}
	c.mx = solveMoments(c.xs)
	c.my = solveMoments(c.ys)
	return &c
}

func solveMoments(vals [splineVertexCount]float64) [splineVertexCount]float64 {
	n := splineVertexCount
	A := mat.NewDense(n, n, nil)
	B := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		A.Set(i, i, 2.0/3.0)
		A.Set(i, (i+n-1)%n, 1.0/6.0)
		A.Set(i, (i+1)%n, 1.0/6.0)
		B.SetVec(i, vals[(i+1)%n]-2*vals[i]+vals[(i+n-1)%n])
	}

	var m mat.VecDense
	if err := m.SolveVec(A, B); err != nil {
		// The cyclic matrix is strictly diagonally dominant and cannot be
		// singular for any vertex values.
		panic(fmt.Sprintf("periodic spline moment system: %v", err))
	}

	var out [splineVertexCount]float64
	for i := 0; i < n; i++ {
		out[i] = m.AtVec(i)
	}
	return out
}

// at evaluates the curve at parameter t, wrapping t into one period.
func (c *periodicCurve) at(t float64) geometry.Point2D {
	n := float64(splineVertexCount)
	t = t - n*floorDiv(t, n)
	i := int(t)
	if i >= splineVertexCount {
		i = 0
	}
	j := (i + 1) % splineVertexCount
	s := t - float64(i)
	u := 1 - s

	x := c.mx[i]*u*u*u/6 + c.mx[j]*s*s*s/6 +
		(c.xs[i]-c.mx[i]/6)*u + (c.xs[j]-c.mx[j]/6)*s
	y := c.my[i]*u*u*u/6 + c.my[j]*s*s*s/6 +
		(c.ys[i]-c.my[i]/6)*u + (c.ys[j]-c.my[j]/6)*s
	return geometry.Point2D{X: x, Y: y}
}

func floorDiv(t, n float64) float64 {
	q := t / n
	f := float64(int(q))
	if q < 0 && q != f {
		f--
	}
	return f
}

// sample returns n evenly-spaced curve points over one full period, endpoint
// included, so the first and last points coincide.
func (c *periodicCurve) sample(n int) []geometry.Point2D {
	if n < 2 {
		n = 2
	}
	out := make([]geometry.Point2D, n)
	for k := 0; k < n; k++ {
		t := float64(splineVertexCount) * float64(k) / float64(n-1)
		out[k] = c.at(t)
	}
	return out
}

// SplinePoints samples n points along the fitted profile boundary.
func SplinePoints(p SplineProfile, n int) []geometry.Point2D {
	return fitPeriodicCurve(Vertices(p)).sample(n)
}

// splineArea integrates the enclosed area of the fitted boundary with the
// shoelace formula over a dense sample.
func splineArea(p SplineProfile) float64 {
	return geometry.PolygonArea(fitPeriodicCurve(Vertices(p)).sample(splineAreaSamples))
}
