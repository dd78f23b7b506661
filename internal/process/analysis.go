// Package process derives stage-to-stage metric series from an ordered
// sequence of draw stages. The analysis is a pure transform: series are
// recomputed from the input pipes on every call and hold no state.
package process

import (
	"errors"
	"fmt"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/shape"
)

// ErrDegenerateMetric reports a reduction ratio whose denominator is zero.
// Surfacing it keeps "no change" distinguishable from "undefined ratio";
// the series never contain infinities or NaNs.
var ErrDegenerateMetric = errors.New("degenerate metric")

// Analysis computes consecutive-pair metrics over an ordered draw process.
// Stage order is semantic: permuting the pipes changes every series.
type Analysis struct {
	Pipes []pipe.Pipe
}

// NewAnalysis wraps an ordered pipe sequence. Empty and singleton sequences
// are valid and produce empty series.
func NewAnalysis(pipes []pipe.Pipe) Analysis {
	return Analysis{Pipes: pipes}
}

func (a Analysis) pairs() int {
	return max(0, len(a.Pipes)-1)
}

// AreaReductions returns the relative area shrink between consecutive stages,
// (initial - final) / initial per pair.
func (a Analysis) AreaReductions() ([]float64, error) {
	out := make([]float64, 0, a.pairs())
	for i := 0; i+1 < len(a.Pipes); i++ {
		initial := a.Pipes[i].Area()
		if initial == 0 {
			return nil, fmt.Errorf("stage %d: %w: zero area", i, ErrDegenerateMetric)
		}
		out = append(out, (initial-a.Pipes[i+1].Area())/initial)
	}
	return out, nil
}

// EccentricityDiffs returns the signed drift change between consecutive
// stages, final minus initial: positive means the bore moved further
// off-center from one stage to the next.
func (a Analysis) EccentricityDiffs() []float64 {
	out := make([]float64, 0, a.pairs())
	for i := 0; i+1 < len(a.Pipes); i++ {
		out = append(out, a.Pipes[i+1].Eccentricity()-a.Pipes[i].Eccentricity())
	}
	return out
}

// ThicknessReductions returns the relative wall-thickness shrink per landmark
// between consecutive stages, elementwise (initial - final) / initial. It
// fails when a stage has no defined thickness (mixed-variant pipe) or when an
// initial thickness component is zero.
func (a Analysis) ThicknessReductions() ([][]float64, error) {
	out := make([][]float64, 0, a.pairs())
	for i := 0; i+1 < len(a.Pipes); i++ {
		initial, err := a.Pipes[i].Thickness()
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		final, err := a.Pipes[i+1].Thickness()
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}

		row := make([]float64, len(initial))
		for j := range initial {
			if initial[j] == 0 {
				return nil, fmt.Errorf("stage %d landmark %s: %w: zero thickness",
					i, shape.LandmarkNames[j], ErrDegenerateMetric)
			}
			row[j] = (initial[j] - final[j]) / initial[j]
		}
		out = append(out, row)
	}
	return out, nil
}
