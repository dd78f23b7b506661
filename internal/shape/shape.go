// Package shape provides the cross-section primitives of a drawn tube and the
// geometric kernel operations over them: area, outline sampling, and landmark
// extraction. The variant set is closed; every operation dispatches
// exhaustively over Circle, Rect, and SplineProfile.
package shape

import (
	"fmt"
	"math"

	"draw-pipe/pkg/geometry"
)

// Kind identifies a shape variant.
type Kind int

const (
	KindCircle Kind = iota
	KindRect
	KindSpline
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "Circle"
	case KindRect:
		return "Rect"
	case KindSpline:
		return "SplineProfile"
	default:
		return "Unknown"
	}
}

// Shape is the closed union of cross-section variants. Only types in this
// package satisfy it; kernel operations switch exhaustively over the three
// concrete types.
type Shape interface {
	isShape()
}

// Circle is a circular cross-section boundary.
type Circle struct {
	Origin   geometry.Point2D
	Diameter float64
}

// Rect is a rectangular cross-section boundary with filleted corners.
// FilletRadius larger than half the smaller dimension is clamped during
// outline and landmark generation; the area formula uses the raw value.
type Rect struct {
	Origin       geometry.Point2D
	Length       float64 // vertical extent
	Width        float64 // horizontal extent
	FilletRadius float64
}

// SplineProfile is a free-form doubly-symmetric closed profile defined by
// three control offsets relative to Origin: V1 on the positive Y axis, V2 in
// the first quadrant, V3 on the positive X axis. The full boundary is the
// periodic cubic spline through these points mirrored across both axes.
type SplineProfile struct {
	Origin geometry.Point2D
	V1     geometry.Point2D
	V2     geometry.Point2D
	V3     geometry.Point2D
}

func (Circle) isShape()        {}
func (Rect) isShape()          {}
func (SplineProfile) isShape() {}

// KindOf returns the variant tag of a shape.
func KindOf(s Shape) Kind {
	switch s.(type) {
	case Circle:
		return KindCircle
	case Rect:
		return KindRect
	case SplineProfile:
		return KindSpline
	default:
		panic(fmt.Sprintf("unhandled shape variant %T", s))
	}
}

// Origin returns the reference point of a shape: the center for Circle and
// Rect, the symmetric-profile center for SplineProfile.
func Origin(s Shape) geometry.Point2D {
	switch v := s.(type) {
	case Circle:
		return v.Origin
	case Rect:
		return v.Origin
	case SplineProfile:
		return v.Origin
	default:
		panic(fmt.Sprintf("unhandled shape variant %T", s))
	}
}

// Area returns the enclosed cross-section area. Circle and Rect use closed
// formulas; SplineProfile integrates the fitted periodic spline numerically.
// The result is a pure function of the shape's own fields.
func Area(s Shape) float64 {
	switch v := s.(type) {
	case Circle:
		r := v.Diameter / 2
		return math.Pi * r * r
	case Rect:
		// Each fillet replaces an r x r square corner with a quarter circle.
		r := v.FilletRadius
		return v.Length*v.Width - (4*r*r - math.Pi*r*r)
	case SplineProfile:
		return splineArea(v)
	default:
		panic(fmt.Sprintf("unhandled shape variant %T", s))
	}
}

// Validate checks that the shape parameters are usable by the kernel.
func Validate(s Shape) error {
	switch v := s.(type) {
	case Circle:
		if err := finitePoint(v.Origin); err != nil {
			return fmt.Errorf("circle origin: %w", err)
		}
		if !isFinite(v.Diameter) || v.Diameter <= 0 {
			return fmt.Errorf("circle diameter must be positive, got %v", v.Diameter)
		}
		return nil
	case Rect:
		if err := finitePoint(v.Origin); err != nil {
			return fmt.Errorf("rect origin: %w", err)
		}
		if !isFinite(v.Length) || v.Length <= 0 {
			return fmt.Errorf("rect length must be positive, got %v", v.Length)
		}
		if !isFinite(v.Width) || v.Width <= 0 {
			return fmt.Errorf("rect width must be positive, got %v", v.Width)
		}
		if !isFinite(v.FilletRadius) || v.FilletRadius < 0 {
			return fmt.Errorf("rect fillet radius must be non-negative, got %v", v.FilletRadius)
		}
		return nil
	case SplineProfile:
		for _, pt := range []struct {
			name string
			p    geometry.Point2D
		}{
			{"origin", v.Origin},
			{"v1", v.V1},
			{"v2", v.V2},
			{"v3", v.V3},
		} {
			if err := finitePoint(pt.p); err != nil {
				return fmt.Errorf("spline %s: %w", pt.name, err)
			}
		}
		return nil
	default:
		panic(fmt.Sprintf("unhandled shape variant %T", s))
	}
}

// clampedFillet returns the fillet radius bounded to half the smaller
// rectangle dimension, the largest geometrically meaningful value.
func clampedFillet(r Rect) float64 {
	max := math.Min(r.Width, r.Length) / 2
	if r.FilletRadius > max {
		return max
	}
	return r.FilletRadius
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finitePoint(p geometry.Point2D) error {
	if !isFinite(p.X) || !isFinite(p.Y) {
		return fmt.Errorf("coordinates must be finite, got (%v, %v)", p.X, p.Y)
	}
	return nil
}
