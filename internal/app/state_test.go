package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/profile"
	"draw-pipe/internal/shape"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, profile.SeedDir(dir))
	return NewState(profile.NewCatalog(dir))
}

func stagePipe(d float64) pipe.Pipe {
	return pipe.Pipe{
		Outer: shape.Circle{Diameter: d},
		Inner: shape.Circle{Diameter: d / 2},
	}
}

func TestStageEditingEmitsEvents(t *testing.T) {
	s := newTestState(t)

	var processEvents, selectionEvents int
	s.On(EventProcessChanged, func(interface{}) { processEvents++ })
	s.On(EventStageSelected, func(interface{}) { selectionEvents++ })

	s.AddStage(stagePipe(85))
	s.AddStage(stagePipe(70))
	assert.Equal(t, 2, s.StageCount())
	assert.Equal(t, 1, s.Selected())
	assert.Equal(t, 2, processEvents)
	assert.Equal(t, 2, selectionEvents)
	assert.True(t, s.Modified())

	require.NoError(t, s.UpdateStage(0, stagePipe(90)))
	got, err := s.Stage(0)
	require.NoError(t, err)
	assert.Equal(t, 90.0, got.Outer.(shape.Circle).Diameter)

	s.MoveStage(1, -1)
	got, err = s.Stage(0)
	require.NoError(t, err)
	assert.Equal(t, 70.0, got.Outer.(shape.Circle).Diameter)

	require.NoError(t, s.RemoveStage(1))
	assert.Equal(t, 1, s.StageCount())
	assert.Error(t, s.RemoveStage(5))
}

func TestStagesReturnsCopy(t *testing.T) {
	s := newTestState(t)
	s.AddStage(stagePipe(85))

	stages := s.Stages()
	stages[0] = stagePipe(10)

	got, err := s.Stage(0)
	require.NoError(t, err)
	assert.Equal(t, 85.0, got.Outer.(shape.Circle).Diameter)
}

func TestLoadTemplate(t *testing.T) {
	s := newTestState(t)

	require.NoError(t, s.LoadTemplate("Default Process"))
	assert.Equal(t, 5, s.StageCount())
	assert.Equal(t, "Default Process", s.ProcessName())

	assert.Error(t, s.LoadTemplate("No Such Template"))
}

func TestProjectRoundTrip(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, s.LoadTemplate("Default Process"))

	path := filepath.Join(t.TempDir(), "draw"+".pipeproj")
	require.NoError(t, s.SaveProject(path))
	assert.False(t, s.Modified())

	other := newTestState(t)
	require.NoError(t, other.LoadProject(path))
	assert.Equal(t, 5, other.StageCount())
	assert.Equal(t, "Default Process", other.ProcessName())
	assert.False(t, other.Modified())
}
