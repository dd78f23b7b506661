package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/shape"
	"draw-pipe/pkg/geometry"
)

// defaultFillet is the fillet radius used by the reference finish dies.
const defaultFillet = 2.5

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

// Finish3 is the three-pass finishing die: a tall offset outer over a fixed
// square bore.
func Finish3() pipe.Pipe {
	return pipe.Pipe{
		Outer: shape.Rect{Origin: pt(0, 5), Length: 60, Width: 50, FilletRadius: defaultFillet},
		Inner: shape.Rect{Origin: pt(0, 0), Length: 44, Width: 44, FilletRadius: defaultFillet},
	}
}

// Finish6 is the six-pass finishing die.
func Finish6() pipe.Pipe {
	return pipe.Pipe{
		Outer: shape.Rect{Origin: pt(0, 3.5), Length: 63, Width: 56, FilletRadius: defaultFillet},
		Inner: shape.Rect{Origin: pt(0, 0), Length: 44, Width: 44, FilletRadius: defaultFillet},
	}
}

// Finish8 is the eight-pass finishing die.
func Finish8() pipe.Pipe {
	return pipe.Pipe{
		Outer: shape.Rect{Origin: pt(0, 2.5), Length: 65, Width: 60, FilletRadius: defaultFillet},
		Inner: shape.Rect{Origin: pt(0, 0), Length: 44, Width: 44, FilletRadius: defaultFillet},
	}
}

// DefaultProcess is the reference five-stage draw: a round billet, three
// free-form intermediate passes, and the rectangular finish.
func DefaultProcess() []pipe.Pipe {
	return []pipe.Pipe{
		{
			Outer: shape.Circle{Origin: pt(0, 0), Diameter: 85},
			Inner: shape.Circle{Origin: pt(0, 0), Diameter: 53},
		},
		{
			Outer: shape.SplineProfile{Origin: pt(0, 0.9), V1: pt(0, 38.55), V2: pt(30.1, 30.2), V3: pt(37.4, 0)},
			Inner: shape.SplineProfile{Origin: pt(0, 0), V1: pt(0, 25.8), V2: pt(19.4, 19.4), V3: pt(25.8, 0)},
		},
		{
			Outer: shape.SplineProfile{Origin: pt(0, 1.7), V1: pt(0, 36.4), V2: pt(29.3, 30.2), V3: pt(33.6, 0)},
			Inner: shape.SplineProfile{Origin: pt(0, 0), V1: pt(0, 24.5), V2: pt(19.7, 19.7), V3: pt(23.5, 0)},
		},
		{
			Outer: shape.SplineProfile{Origin: pt(0, 2.15), V1: pt(0, 34.7), V2: pt(28.2, 30.2), V3: pt(32.5, 0)},
			Inner: shape.SplineProfile{Origin: pt(0, 0), V1: pt(0, 23.7), V2: pt(19.6, 19.6), V3: pt(24.0, 0)},
		},
		Finish8(),
	}
}

// SeedDir writes the built-in templates into an empty data directory so a
// fresh installation has something to load. Directories that already contain
// template files are left untouched.
func SeedDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			return nil
		}
	}

	seeds := []struct {
		file  string
		name  string
		pipes []pipe.Pipe
	}{
		{"default_process.json", "Default Process", DefaultProcess()},
		{"finish_3.json", "", []pipe.Pipe{Finish3()}},
		{"finish_6.json", "", []pipe.Pipe{Finish6()}},
		{"finish_8.json", "", []pipe.Pipe{Finish8()}},
	}

	for _, seed := range seeds {
		payload, err := FromPipes(seed.pipes)
		if err != nil {
			return fmt.Errorf("seeding %s: %w", seed.file, err)
		}
		t := TemplateFilePayload{Name: seed.name, Version: payload.Version, Pipes: payload.Pipes}
		if err := SaveTemplateFile(filepath.Join(dir, seed.file), t); err != nil {
			return fmt.Errorf("seeding %s: %w", seed.file, err)
		}
	}
	return nil
}
