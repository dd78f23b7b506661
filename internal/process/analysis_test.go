package process

import (
	"errors"
	"math"
	"testing"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/shape"
	"draw-pipe/pkg/geometry"
)

func circlePipe(outerD, innerD float64) pipe.Pipe {
	return pipe.Pipe{
		Outer: shape.Circle{Diameter: outerD},
		Inner: shape.Circle{Diameter: innerD},
	}
}

func TestSeriesLengths(t *testing.T) {
	stages := []pipe.Pipe{
		circlePipe(85, 53),
		circlePipe(70, 48),
		circlePipe(60, 44),
		circlePipe(52, 40),
	}
	a := NewAnalysis(stages)

	areas, err := a.AreaReductions()
	if err != nil {
		t.Fatalf("AreaReductions: %v", err)
	}
	if len(areas) != 3 {
		t.Errorf("got %d area reductions, expected 3", len(areas))
	}
	if len(a.EccentricityDiffs()) != 3 {
		t.Errorf("got %d eccentricity diffs, expected 3", len(a.EccentricityDiffs()))
	}
	th, err := a.ThicknessReductions()
	if err != nil {
		t.Fatalf("ThicknessReductions: %v", err)
	}
	if len(th) != 3 {
		t.Errorf("got %d thickness rows, expected 3", len(th))
	}
	for i, row := range th {
		if len(row) != shape.LandmarkCount {
			t.Errorf("row %d has %d entries, expected %d", i, len(row), shape.LandmarkCount)
		}
	}
}

func TestEmptyAndSingletonSequences(t *testing.T) {
	for _, stages := range [][]pipe.Pipe{nil, {circlePipe(85, 53)}} {
		a := NewAnalysis(stages)

		areas, err := a.AreaReductions()
		if err != nil {
			t.Fatalf("AreaReductions on %d stages: %v", len(stages), err)
		}
		if areas == nil || len(areas) != 0 {
			t.Errorf("got %v, expected empty non-nil series", areas)
		}
		if diffs := a.EccentricityDiffs(); diffs == nil || len(diffs) != 0 {
			t.Errorf("got %v, expected empty non-nil series", diffs)
		}
		th, err := a.ThicknessReductions()
		if err != nil {
			t.Fatalf("ThicknessReductions on %d stages: %v", len(stages), err)
		}
		if th == nil || len(th) != 0 {
			t.Errorf("got %v, expected empty non-nil series", th)
		}
	}
}

func TestTwoStageRectScenario(t *testing.T) {
	stages := []pipe.Pipe{
		{
			Outer: shape.Rect{Length: 65, Width: 60, FilletRadius: 2.5},
			Inner: shape.Rect{Length: 44, Width: 44, FilletRadius: 2.5},
		},
		{
			Outer: shape.Rect{Length: 60, Width: 50, FilletRadius: 2.5},
			Inner: shape.Rect{Length: 44, Width: 44, FilletRadius: 2.5},
		},
	}
	a := NewAnalysis(stages)

	areas, err := a.AreaReductions()
	if err != nil {
		t.Fatalf("AreaReductions: %v", err)
	}
	if len(areas) != 1 {
		t.Fatalf("got %d area reductions, expected 1", len(areas))
	}
	if areas[0] <= 0 {
		t.Errorf("got reduction %v, expected positive (outer shrank, inner fixed)", areas[0])
	}

	diffs := a.EccentricityDiffs()
	if len(diffs) != 1 || diffs[0] != 0 {
		t.Errorf("got eccentricity diffs %v, expected [0]", diffs)
	}
}

func TestAreaReductionValue(t *testing.T) {
	a := NewAnalysis([]pipe.Pipe{circlePipe(85, 53), circlePipe(85, 53)})
	areas, err := a.AreaReductions()
	if err != nil {
		t.Fatalf("AreaReductions: %v", err)
	}
	if areas[0] != 0 {
		t.Errorf("got %v for identical stages, expected 0", areas[0])
	}

	// Halving the annular area with a fixed bore: the outer diameter that
	// satisfies D2^2 - d^2 = (D1^2 - d^2)/2 must report a 0.5 reduction.
	outer := math.Sqrt((100*100 + 53*53) / 2.0)
	a = NewAnalysis([]pipe.Pipe{
		circlePipe(100, 53),
		{Outer: shape.Circle{Diameter: outer}, Inner: shape.Circle{Diameter: 53}},
	})
	reductions, err := a.AreaReductions()
	if err != nil {
		t.Fatalf("AreaReductions: %v", err)
	}
	if len(reductions) != 1 || math.Abs(reductions[0]-0.5) > 1e-12 {
		t.Errorf("got %v, expected [0.5]", reductions)
	}
}

func TestEccentricityDiffSign(t *testing.T) {
	concentric := circlePipe(85, 53)
	drifted := pipe.Pipe{
		Outer: shape.Circle{Origin: geometry.NewPoint2D(0, 2), Diameter: 70},
		Inner: shape.Circle{Diameter: 48},
	}

	diffs := NewAnalysis([]pipe.Pipe{concentric, drifted}).EccentricityDiffs()
	if len(diffs) != 1 || !(diffs[0] > 0) {
		t.Errorf("got %v, expected positive diff when drift grows", diffs)
	}

	diffs = NewAnalysis([]pipe.Pipe{drifted, concentric}).EccentricityDiffs()
	if len(diffs) != 1 || !(diffs[0] < 0) {
		t.Errorf("got %v, expected negative diff when drift shrinks", diffs)
	}
}

func TestThicknessReductionValues(t *testing.T) {
	a := NewAnalysis([]pipe.Pipe{circlePipe(85, 53), circlePipe(70, 48)})
	th, err := a.ThicknessReductions()
	if err != nil {
		t.Fatalf("ThicknessReductions: %v", err)
	}

	// Walls go from 16 to 11 at every landmark.
	want := (16.0 - 11.0) / 16.0
	for j, v := range th[0] {
		if math.Abs(v-want) > 1e-12 {
			t.Errorf("reduction[%d] = %v, expected %v", j, v, want)
		}
	}
}

func TestZeroAreaFails(t *testing.T) {
	a := NewAnalysis([]pipe.Pipe{circlePipe(53, 53), circlePipe(50, 44)})

	_, err := a.AreaReductions()
	if !errors.Is(err, ErrDegenerateMetric) {
		t.Errorf("got %v, expected ErrDegenerateMetric", err)
	}
}

func TestZeroThicknessFails(t *testing.T) {
	// Zero wall at the top landmark but a nonzero annular area.
	flat := pipe.Pipe{
		Outer: shape.Rect{Length: 10, Width: 10},
		Inner: shape.Rect{Length: 10, Width: 4},
	}
	a := NewAnalysis([]pipe.Pipe{flat, circlePipe(50, 44)})

	if _, err := a.AreaReductions(); err != nil {
		t.Fatalf("AreaReductions should succeed, got %v", err)
	}
	_, err := a.ThicknessReductions()
	if !errors.Is(err, ErrDegenerateMetric) {
		t.Errorf("got %v, expected ErrDegenerateMetric", err)
	}
}

func TestMixedPairingPropagates(t *testing.T) {
	mixed := pipe.Pipe{
		Outer: shape.Circle{Diameter: 85},
		Inner: shape.Rect{Length: 44, Width: 44, FilletRadius: 2.5},
	}
	a := NewAnalysis([]pipe.Pipe{mixed, circlePipe(70, 48)})

	if _, err := a.AreaReductions(); err != nil {
		t.Fatalf("AreaReductions should succeed, got %v", err)
	}
	_, err := a.ThicknessReductions()
	if !errors.Is(err, pipe.ErrUnsupportedPairing) {
		t.Errorf("got %v, expected ErrUnsupportedPairing", err)
	}
}

func TestOrderMatters(t *testing.T) {
	first := circlePipe(85, 53)
	second := circlePipe(70, 48)

	forward, err := NewAnalysis([]pipe.Pipe{first, second}).AreaReductions()
	if err != nil {
		t.Fatalf("AreaReductions: %v", err)
	}
	backward, err := NewAnalysis([]pipe.Pipe{second, first}).AreaReductions()
	if err != nil {
		t.Fatalf("AreaReductions: %v", err)
	}
	if forward[0] <= 0 || backward[0] >= 0 {
		t.Errorf("got %v and %v, expected opposite signs", forward[0], backward[0])
	}
}
