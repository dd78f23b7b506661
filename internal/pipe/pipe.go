// Package pipe models one stage of a drawn tube as an immutable pairing of an
// outer boundary and an inner bore, and derives the stage's comparison
// metrics: annular area, bore eccentricity, and landmark wall thickness.
package pipe

import (
	"errors"
	"fmt"
	"math"

	"draw-pipe/internal/shape"
)

// ErrUnsupportedPairing reports a thickness request on a pipe whose outer and
// inner shapes are different variants. Landmark distances across
// heterogeneous shapes carry no geometric meaning, so the computation is
// rejected rather than coerced.
var ErrUnsupportedPairing = errors.New("unsupported shape pairing")

// Pipe is one draw stage. Mixed-variant pairs are legal and expose area and
// eccentricity; thickness requires both shapes to be the same variant. A Pipe
// is constructed once and never mutated; an edit is a new Pipe.
type Pipe struct {
	Outer shape.Shape
	Inner shape.Shape
}

// Validate checks both shapes' parameters.
func (p Pipe) Validate() error {
	if err := shape.Validate(p.Outer); err != nil {
		return fmt.Errorf("outer: %w", err)
	}
	if err := shape.Validate(p.Inner); err != nil {
		return fmt.Errorf("inner: %w", err)
	}
	return nil
}

// Area returns the annular cross-section area, outer minus inner. Enclosure
// of the bore is not validated; an inner shape larger than the outer yields a
// negative value.
func (p Pipe) Area() float64 {
	return shape.Area(p.Outer) - shape.Area(p.Inner)
}

// Eccentricity returns the Euclidean offset between the outer and inner
// origins, the off-center drift of the bore.
func (p Pipe) Eccentricity() float64 {
	return shape.Origin(p.Outer).Distance(shape.Origin(p.Inner))
}

// Thickness returns the wall thickness at the five landmarks. Top and Bottom
// use the vertical gap, Right the horizontal gap, and the two fillet
// transition landmarks the full Euclidean distance. Circle pairs collapse to
// the constant radial gap (outerD - innerD) / 2 at every landmark.
func (p Pipe) Thickness() ([]float64, error) {
	outerKind, innerKind := shape.KindOf(p.Outer), shape.KindOf(p.Inner)
	if outerKind != innerKind {
		return nil, fmt.Errorf("%w: %s outer with %s inner", ErrUnsupportedPairing, outerKind, innerKind)
	}

	if outerKind == shape.KindCircle {
		outer := p.Outer.(shape.Circle)
		inner := p.Inner.(shape.Circle)
		wall := (outer.Diameter - inner.Diameter) / 2
		th := make([]float64, shape.LandmarkCount)
		for i := range th {
			th[i] = wall
		}
		return th, nil
	}

	outer := shape.Landmarks(p.Outer)
	inner := shape.Landmarks(p.Inner)
	th := make([]float64, shape.LandmarkCount)
	for i := range th {
		switch i {
		case 0, 4: // Top, Bottom: locally horizontal tangent
			th[i] = math.Abs(outer[i].Y - inner[i].Y)
		case 2: // Right: locally vertical tangent
			th[i] = math.Abs(outer[i].X - inner[i].X)
		default: // fillet transitions have no dominant axis
			th[i] = outer[i].Distance(inner[i])
		}
	}
	return th, nil
}
