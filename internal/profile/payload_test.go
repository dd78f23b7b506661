package profile

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/shape"
)

func TestShapePayloadDecodesByDiscriminator(t *testing.T) {
	var p ShapePayload
	err := json.Unmarshal([]byte(`{"shape_type":"Circle","origin":[0,0],"diameter":85}`), &p)
	require.NoError(t, err)
	require.NotNil(t, p.Circle)
	assert.Nil(t, p.Rect)
	assert.Nil(t, p.Spline)
	assert.Equal(t, 85.0, p.Circle.Diameter)

	err = json.Unmarshal([]byte(`{"shape_type":"CubicSplineShape","origin":[0,0.9],"v1":[0,38.55],"v2":[30.1,30.2],"v3":[37.4,0]}`), &p)
	require.NoError(t, err)
	require.NotNil(t, p.Spline)
	assert.Equal(t, [2]float64{30.1, 30.2}, p.Spline.V2)
}

func TestShapePayloadRejectsUnknownType(t *testing.T) {
	var p ShapePayload
	err := json.Unmarshal([]byte(`{"shape_type":"Ellipse","origin":[0,0]}`), &p)
	assert.Error(t, err)
}

func TestShapePayloadValidation(t *testing.T) {
	cases := []struct {
		name    string
		payload ShapePayload
		wantErr bool
	}{
		{
			name:    "valid circle",
			payload: ShapePayload{Circle: &CirclePayload{ShapeType: ShapeTypeCircle, Diameter: 85}},
		},
		{
			name:    "zero diameter",
			payload: ShapePayload{Circle: &CirclePayload{ShapeType: ShapeTypeCircle}},
			wantErr: true,
		},
		{
			name: "zero fillet rejected at the payload layer",
			payload: ShapePayload{Rect: &RectPayload{
				ShapeType: ShapeTypeRect, Length: 60, Width: 50,
			}},
			wantErr: true,
		},
		{
			name: "valid rect",
			payload: ShapePayload{Rect: &RectPayload{
				ShapeType: ShapeTypeRect, Length: 60, Width: 50, FilletRadius: 2.5,
			}},
		},
		{
			name:    "empty union",
			payload: ShapePayload{},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPipePayloadDiscriminatorAgreement(t *testing.T) {
	circle := ShapePayload{Circle: &CirclePayload{ShapeType: ShapeTypeCircle, Diameter: 85}}
	rect := ShapePayload{Rect: &RectPayload{ShapeType: ShapeTypeRect, Length: 60, Width: 50, FilletRadius: 2.5}}

	good := PipePayload{PipeType: PipeTypeCircleCircle, Outer: circle, Inner: circle}
	assert.NoError(t, good.Validate())

	mismatch := PipePayload{PipeType: PipeTypeCircleCircle, Outer: circle, Inner: rect}
	assert.Error(t, mismatch.Validate())

	unknown := PipePayload{PipeType: "CircleRect", Outer: circle, Inner: rect}
	assert.Error(t, unknown.Validate())
}

func TestProfilePayloadRoundTrip(t *testing.T) {
	original, err := FromPipes(DefaultProcess())
	require.NoError(t, err)
	require.Len(t, original.Pipes, 5)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded ProfilePayload
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	pipes, err := decoded.ToPipes()
	require.NoError(t, err)
	require.Len(t, pipes, 5)
	assert.Equal(t, shape.KindCircle, shape.KindOf(pipes[0].Outer))
	assert.Equal(t, shape.KindSpline, shape.KindOf(pipes[1].Outer))
	assert.Equal(t, shape.KindRect, shape.KindOf(pipes[4].Outer))
}

func TestFromPipeRejectsMixedVariants(t *testing.T) {
	mixed := pipe.Pipe{
		Outer: shape.Circle{Diameter: 85},
		Inner: shape.Rect{Length: 44, Width: 44, FilletRadius: 2.5},
	}
	_, err := FromPipe(mixed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pipe.ErrUnsupportedPairing))
}
