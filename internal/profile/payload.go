// Package profile defines the JSON wire schema for pipe profiles and the
// template catalog backing the API and dashboard. Payloads carry the exact
// field names used by template files and the analyze endpoint; conversion to
// kernel types happens only after validation.
package profile

import (
	"encoding/json"
	"fmt"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/shape"
	"draw-pipe/pkg/geometry"
)

// Shape type discriminators carried in the shape_type field.
const (
	ShapeTypeCircle = "Circle"
	ShapeTypeRect   = "Rect"
	ShapeTypeSpline = "CubicSplineShape"
)

// Pipe type discriminators carried in the pipe_type field. Only same-variant
// pairings are representable on the wire.
const (
	PipeTypeCircleCircle = "CircleCircle"
	PipeTypeRectRect     = "RectRect"
	PipeTypeSplineSpline = "SplineSpline"
)

// CirclePayload is the wire form of a circular boundary.
type CirclePayload struct {
	ShapeType string     `json:"shape_type"`
	Origin    [2]float64 `json:"origin"`
	Diameter  float64    `json:"diameter"`
}

// RectPayload is the wire form of a filleted rectangular boundary.
type RectPayload struct {
	ShapeType    string     `json:"shape_type"`
	Origin       [2]float64 `json:"origin"`
	Length       float64    `json:"length"`
	Width        float64    `json:"width"`
	FilletRadius float64    `json:"fillet_radius"`
}

// SplinePayload is the wire form of a free-form spline boundary.
type SplinePayload struct {
	ShapeType string     `json:"shape_type"`
	Origin    [2]float64 `json:"origin"`
	V1        [2]float64 `json:"v1"`
	V2        [2]float64 `json:"v2"`
	V3        [2]float64 `json:"v3"`
}

// ShapePayload is the discriminated union over the three shape variants.
// Exactly one of the variant pointers is set after a successful unmarshal.
type ShapePayload struct {
	Circle *CirclePayload
	Rect   *RectPayload
	Spline *SplinePayload
}

// shapeTypeOf returns the discriminator of the populated variant.
func (p ShapePayload) shapeTypeOf() string {
	switch {
	case p.Circle != nil:
		return ShapeTypeCircle
	case p.Rect != nil:
		return ShapeTypeRect
	case p.Spline != nil:
		return ShapeTypeSpline
	default:
		return ""
	}
}

// UnmarshalJSON decodes the union by peeking at shape_type first. Unknown
// discriminators are rejected.
func (p *ShapePayload) UnmarshalJSON(data []byte) error {
	var probe struct {
		ShapeType string `json:"shape_type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	*p = ShapePayload{}
	switch probe.ShapeType {
	case ShapeTypeCircle:
		var c CirclePayload
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		p.Circle = &c
	case ShapeTypeRect:
		var r RectPayload
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		p.Rect = &r
	case ShapeTypeSpline:
		var s SplinePayload
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.Spline = &s
	default:
		return fmt.Errorf("unknown shape_type %q", probe.ShapeType)
	}
	return nil
}

// MarshalJSON encodes the populated variant directly.
func (p ShapePayload) MarshalJSON() ([]byte, error) {
	switch {
	case p.Circle != nil:
		return json.Marshal(p.Circle)
	case p.Rect != nil:
		return json.Marshal(p.Rect)
	case p.Spline != nil:
		return json.Marshal(p.Spline)
	default:
		return nil, fmt.Errorf("empty shape payload")
	}
}

// Validate applies the wire-level constraints: positive diameter and
// dimensions, and a strictly positive fillet radius. The kernel tolerates a
// zero fillet but the payload contract does not.
func (p ShapePayload) Validate() error {
	switch {
	case p.Circle != nil:
		if p.Circle.Diameter <= 0 {
			return fmt.Errorf("circle diameter must be positive, got %v", p.Circle.Diameter)
		}
	case p.Rect != nil:
		if p.Rect.Length <= 0 {
			return fmt.Errorf("rect length must be positive, got %v", p.Rect.Length)
		}
		if p.Rect.Width <= 0 {
			return fmt.Errorf("rect width must be positive, got %v", p.Rect.Width)
		}
		if p.Rect.FilletRadius <= 0 {
			return fmt.Errorf("rect fillet_radius must be positive, got %v", p.Rect.FilletRadius)
		}
	case p.Spline != nil:
		// Any finite control points form a valid payload; the kernel
		// checks finiteness.
	default:
		return fmt.Errorf("empty shape payload")
	}

	s, err := p.ToShape()
	if err != nil {
		return err
	}
	return shape.Validate(s)
}

// ToShape converts the payload to its kernel shape.
func (p ShapePayload) ToShape() (shape.Shape, error) {
	switch {
	case p.Circle != nil:
		return shape.Circle{
			Origin:   point(p.Circle.Origin),
			Diameter: p.Circle.Diameter,
		}, nil
	case p.Rect != nil:
		return shape.Rect{
			Origin:       point(p.Rect.Origin),
			Length:       p.Rect.Length,
			Width:        p.Rect.Width,
			FilletRadius: p.Rect.FilletRadius,
		}, nil
	case p.Spline != nil:
		return shape.SplineProfile{
			Origin: point(p.Spline.Origin),
			V1:     point(p.Spline.V1),
			V2:     point(p.Spline.V2),
			V3:     point(p.Spline.V3),
		}, nil
	default:
		return nil, fmt.Errorf("empty shape payload")
	}
}

// FromShape builds the wire payload for a kernel shape.
func FromShape(s shape.Shape) ShapePayload {
	switch v := s.(type) {
	case shape.Circle:
		return ShapePayload{Circle: &CirclePayload{
			ShapeType: ShapeTypeCircle,
			Origin:    pair(v.Origin),
			Diameter:  v.Diameter,
		}}
	case shape.Rect:
		return ShapePayload{Rect: &RectPayload{
			ShapeType:    ShapeTypeRect,
			Origin:       pair(v.Origin),
			Length:       v.Length,
			Width:        v.Width,
			FilletRadius: v.FilletRadius,
		}}
	case shape.SplineProfile:
		return ShapePayload{Spline: &SplinePayload{
			ShapeType: ShapeTypeSpline,
			Origin:    pair(v.Origin),
			V1:        pair(v.V1),
			V2:        pair(v.V2),
			V3:        pair(v.V3),
		}}
	default:
		panic(fmt.Sprintf("unhandled shape variant %T", s))
	}
}

// PipePayload is the wire form of one draw stage.
type PipePayload struct {
	PipeType string       `json:"pipe_type"`
	Outer    ShapePayload `json:"outer"`
	Inner    ShapePayload `json:"inner"`
}

// shapeTypeForPipeType maps the pipe discriminator to the shape discriminator
// both member shapes must carry.
func shapeTypeForPipeType(pipeType string) (string, error) {
	switch pipeType {
	case PipeTypeCircleCircle:
		return ShapeTypeCircle, nil
	case PipeTypeRectRect:
		return ShapeTypeRect, nil
	case PipeTypeSplineSpline:
		return ShapeTypeSpline, nil
	default:
		return "", fmt.Errorf("unknown pipe_type %q", pipeType)
	}
}

// Validate checks the discriminator agreement and both member payloads.
func (p PipePayload) Validate() error {
	want, err := shapeTypeForPipeType(p.PipeType)
	if err != nil {
		return err
	}
	if got := p.Outer.shapeTypeOf(); got != want {
		return fmt.Errorf("pipe_type %s requires %s outer, got %s", p.PipeType, want, got)
	}
	if got := p.Inner.shapeTypeOf(); got != want {
		return fmt.Errorf("pipe_type %s requires %s inner, got %s", p.PipeType, want, got)
	}
	if err := p.Outer.Validate(); err != nil {
		return fmt.Errorf("outer: %w", err)
	}
	if err := p.Inner.Validate(); err != nil {
		return fmt.Errorf("inner: %w", err)
	}
	return nil
}

// ToPipe converts a validated payload to a kernel pipe.
func (p PipePayload) ToPipe() (pipe.Pipe, error) {
	outer, err := p.Outer.ToShape()
	if err != nil {
		return pipe.Pipe{}, fmt.Errorf("outer: %w", err)
	}
	inner, err := p.Inner.ToShape()
	if err != nil {
		return pipe.Pipe{}, fmt.Errorf("inner: %w", err)
	}
	return pipe.Pipe{Outer: outer, Inner: inner}, nil
}

// FromPipe builds the wire payload for a same-variant kernel pipe. Pipes
// pairing different variants have no wire representation.
func FromPipe(p pipe.Pipe) (PipePayload, error) {
	outerKind, innerKind := shape.KindOf(p.Outer), shape.KindOf(p.Inner)
	if outerKind != innerKind {
		return PipePayload{}, fmt.Errorf("%w: %s outer with %s inner has no wire form",
			pipe.ErrUnsupportedPairing, outerKind, innerKind)
	}

	var pipeType string
	switch outerKind {
	case shape.KindCircle:
		pipeType = PipeTypeCircleCircle
	case shape.KindRect:
		pipeType = PipeTypeRectRect
	case shape.KindSpline:
		pipeType = PipeTypeSplineSpline
	}

	return PipePayload{
		PipeType: pipeType,
		Outer:    FromShape(p.Outer),
		Inner:    FromShape(p.Inner),
	}, nil
}

// ProfilePayload is the analyze request body: an ordered draw process.
type ProfilePayload struct {
	Version int           `json:"version"`
	Pipes   []PipePayload `json:"pipes"`
}

// Validate checks every stage payload. An empty stage list is valid.
func (p ProfilePayload) Validate() error {
	for i, stage := range p.Pipes {
		if err := stage.Validate(); err != nil {
			return fmt.Errorf("pipe %d: %w", i, err)
		}
	}
	return nil
}

// ToPipes converts all stage payloads in order.
func (p ProfilePayload) ToPipes() ([]pipe.Pipe, error) {
	pipes := make([]pipe.Pipe, 0, len(p.Pipes))
	for i, stage := range p.Pipes {
		pp, err := stage.ToPipe()
		if err != nil {
			return nil, fmt.Errorf("pipe %d: %w", i, err)
		}
		pipes = append(pipes, pp)
	}
	return pipes, nil
}

// FromPipes builds a versioned profile payload from kernel pipes.
func FromPipes(pipes []pipe.Pipe) (ProfilePayload, error) {
	out := ProfilePayload{Version: 1, Pipes: make([]PipePayload, 0, len(pipes))}
	for i, p := range pipes {
		pp, err := FromPipe(p)
		if err != nil {
			return ProfilePayload{}, fmt.Errorf("pipe %d: %w", i, err)
		}
		out.Pipes = append(out.Pipes, pp)
	}
	return out, nil
}

// AnalyzeResponse is the analyze endpoint response body.
type AnalyzeResponse struct {
	AreaReductions      []float64   `json:"area_reductions"`
	EccentricityDiffs   []float64   `json:"eccentricity_diffs"`
	ThicknessReductions [][]float64 `json:"thickness_reductions"`
}

// TemplatesResponse is the template listing response body.
type TemplatesResponse struct {
	Templates map[string][]PipePayload `json:"templates"`
}

func point(p [2]float64) geometry.Point2D {
	return geometry.Point2D{X: p[0], Y: p[1]}
}

func pair(p geometry.Point2D) [2]float64 {
	return [2]float64{p.X, p.Y}
}
