package pipe

import (
	"errors"
	"math"
	"testing"

	"draw-pipe/internal/shape"
	"draw-pipe/pkg/geometry"
)

func within(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestCircleCirclePipe(t *testing.T) {
	p := Pipe{
		Outer: shape.Circle{Diameter: 85},
		Inner: shape.Circle{Diameter: 53},
	}

	wantArea := math.Pi * (42.5*42.5 - 26.5*26.5)
	if a := p.Area(); !within(a, wantArea, 1e-9) {
		t.Errorf("got area %v, expected %v", a, wantArea)
	}
	if e := p.Eccentricity(); e != 0 {
		t.Errorf("got eccentricity %v, expected 0", e)
	}

	th, err := p.Thickness()
	if err != nil {
		t.Fatalf("Thickness: %v", err)
	}
	if len(th) != shape.LandmarkCount {
		t.Fatalf("got %d thickness values, expected %d", len(th), shape.LandmarkCount)
	}
	for i, v := range th {
		if !within(v, 16, 1e-12) {
			t.Errorf("thickness[%d] = %v, expected 16", i, v)
		}
	}
}

func TestCircleCircleThicknessIgnoresOffset(t *testing.T) {
	// The radial gap rule applies even when the bore has drifted.
	p := Pipe{
		Outer: shape.Circle{Origin: geometry.NewPoint2D(0, 1.5), Diameter: 85},
		Inner: shape.Circle{Diameter: 53},
	}
	if e := p.Eccentricity(); !within(e, 1.5, 1e-12) {
		t.Errorf("got eccentricity %v, expected 1.5", e)
	}
	th, err := p.Thickness()
	if err != nil {
		t.Fatalf("Thickness: %v", err)
	}
	for i, v := range th {
		if !within(v, 16, 1e-12) {
			t.Errorf("thickness[%d] = %v, expected 16", i, v)
		}
	}
}

func TestRectRectThickness(t *testing.T) {
	p := Pipe{
		Outer: shape.Rect{Origin: geometry.NewPoint2D(0, 2.5), Length: 65, Width: 60, FilletRadius: 2.5},
		Inner: shape.Rect{Length: 44, Width: 44, FilletRadius: 2.5},
	}

	th, err := p.Thickness()
	if err != nil {
		t.Fatalf("Thickness: %v", err)
	}

	// Same fillet on both shapes: the diagonal landmarks differ by the
	// half-dimension deltas only.
	want := []float64{
		13,                // |35 - 22|
		math.Sqrt(233),    // hypot(30-22, 35-22)
		8,                 // |30 - 22|
		8 * math.Sqrt2,    // hypot(8, |-30+22|)
		8,                 // |-30 - -22|
	}
	for i := range want {
		if !within(th[i], want[i], 1e-9) {
			t.Errorf("thickness[%d] = %v, expected %v", i, th[i], want[i])
		}
	}
}

func TestSplineSplineThickness(t *testing.T) {
	p := Pipe{
		Outer: shape.SplineProfile{
			Origin: geometry.NewPoint2D(0, 0.9),
			V1:     geometry.NewPoint2D(0, 38.55),
			V2:     geometry.NewPoint2D(30.1, 30.2),
			V3:     geometry.NewPoint2D(37.4, 0),
		},
		Inner: shape.SplineProfile{
			V1: geometry.NewPoint2D(0, 25.8),
			V2: geometry.NewPoint2D(19.4, 19.4),
			V3: geometry.NewPoint2D(25.8, 0),
		},
	}

	th, err := p.Thickness()
	if err != nil {
		t.Fatalf("Thickness: %v", err)
	}

	want := []float64{
		39.45 - 25.8,
		math.Hypot(30.1-19.4, 31.1-19.4),
		37.4 - 25.8,
		math.Hypot(30.1-19.4, -29.3+19.4),
		37.65 - 25.8,
	}
	for i := range want {
		if !within(th[i], want[i], 1e-9) {
			t.Errorf("thickness[%d] = %v, expected %v", i, th[i], want[i])
		}
	}
}

func TestMixedPairingRejected(t *testing.T) {
	p := Pipe{
		Outer: shape.Circle{Diameter: 85},
		Inner: shape.Rect{Length: 44, Width: 44, FilletRadius: 2.5},
	}

	// Area and eccentricity remain available for mixed pairs.
	if a := p.Area(); a <= 0 {
		t.Errorf("got area %v, expected positive", a)
	}

	th, err := p.Thickness()
	if th != nil {
		t.Errorf("got thickness %v, expected nil", th)
	}
	if !errors.Is(err, ErrUnsupportedPairing) {
		t.Errorf("got error %v, expected ErrUnsupportedPairing", err)
	}
}

func TestNegativeAreaPermitted(t *testing.T) {
	// Enclosure is not validated; an oversized bore yields a negative area.
	p := Pipe{
		Outer: shape.Circle{Diameter: 10},
		Inner: shape.Circle{Diameter: 20},
	}
	if a := p.Area(); a >= 0 {
		t.Errorf("got area %v, expected negative", a)
	}
}

func TestDerivedValuesIdempotent(t *testing.T) {
	build := func() Pipe {
		return Pipe{
			Outer: shape.SplineProfile{
				Origin: geometry.NewPoint2D(0, 1.7),
				V1:     geometry.NewPoint2D(0, 36.4),
				V2:     geometry.NewPoint2D(29.3, 30.2),
				V3:     geometry.NewPoint2D(33.6, 0),
			},
			Inner: shape.SplineProfile{
				V1: geometry.NewPoint2D(0, 24.5),
				V2: geometry.NewPoint2D(19.7, 19.7),
				V3: geometry.NewPoint2D(23.5, 0),
			},
		}
	}

	a, b := build(), build()
	if a.Area() != b.Area() {
		t.Error("areas differ between identical constructions")
	}
	if a.Eccentricity() != b.Eccentricity() {
		t.Error("eccentricities differ between identical constructions")
	}
	ta, err := a.Thickness()
	if err != nil {
		t.Fatalf("Thickness: %v", err)
	}
	tb, _ := b.Thickness()
	for i := range ta {
		if ta[i] != tb[i] {
			t.Errorf("thickness[%d] differs between identical constructions", i)
		}
	}
}

func TestPipeValidate(t *testing.T) {
	good := Pipe{
		Outer: shape.Circle{Diameter: 85},
		Inner: shape.Circle{Diameter: 53},
	}
	if err := good.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	bad := Pipe{
		Outer: shape.Circle{Diameter: 85},
		Inner: shape.Circle{Diameter: -1},
	}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for invalid inner shape")
	}
}
