// Package app provides the dashboard's application state and event bus.
package app

import (
	"fmt"
	"sync"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/profile"
	"draw-pipe/internal/project"
)

// EventType identifies application events.
type EventType int

const (
	EventProcessChanged EventType = iota
	EventStageSelected
	EventViewChanged
	EventProjectLoaded
	EventProjectSaved
	EventModified
	EventTemplatesChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the editable draw process, the view settings, and the template
// catalog handle. All mutation goes through methods that emit events; the
// stage slice handed out by Stages is always a copy.
type State struct {
	mu sync.RWMutex

	ProjectPath string
	processName string
	modified    bool

	stages   []pipe.Pipe
	selected int // selected stage index, -1 for none

	view project.ViewSettings

	catalog *profile.Catalog

	listeners map[EventType][]EventListener
}

// NewState creates the application state over a template catalog.
func NewState(catalog *profile.Catalog) *State {
	return &State{
		processName: "Untitled Process",
		selected:    -1,
		view:        project.DefaultViewSettings(),
		catalog:     catalog,
		listeners:   make(map[EventType][]EventListener),
	}
}

// On registers an event listener.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the event.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Catalog returns the template catalog.
func (s *State) Catalog() *profile.Catalog {
	return s.catalog
}

// ProcessName returns the display name of the current process.
func (s *State) ProcessName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processName
}

// SetProcessName renames the current process.
func (s *State) SetProcessName(name string) {
	s.mu.Lock()
	s.processName = name
	s.mu.Unlock()
	s.SetModified(true)
}

// Modified reports whether the process has unsaved changes.
func (s *State) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// SetModified updates the dirty flag and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// Stages returns a copy of the current stage sequence.
func (s *State) Stages() []pipe.Pipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]pipe.Pipe, len(s.stages))
	copy(out, s.stages)
	return out
}

// StageCount returns the number of stages.
func (s *State) StageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stages)
}

// Stage returns the stage at index i.
func (s *State) Stage(i int) (pipe.Pipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.stages) {
		return pipe.Pipe{}, fmt.Errorf("stage index %d out of range", i)
	}
	return s.stages[i], nil
}

// SetStages replaces the full stage sequence.
func (s *State) SetStages(stages []pipe.Pipe) {
	s.mu.Lock()
	s.stages = make([]pipe.Pipe, len(stages))
	copy(s.stages, stages)
	if s.selected >= len(s.stages) {
		s.selected = len(s.stages) - 1
	}
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventProcessChanged, nil)
}

// AddStage appends a stage.
func (s *State) AddStage(p pipe.Pipe) {
	s.mu.Lock()
	s.stages = append(s.stages, p)
	s.selected = len(s.stages) - 1
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventProcessChanged, nil)
	s.Emit(EventStageSelected, s.selected)
}

// UpdateStage replaces the stage at index i.
func (s *State) UpdateStage(i int, p pipe.Pipe) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.stages) {
		s.mu.Unlock()
		return fmt.Errorf("stage index %d out of range", i)
	}
	s.stages[i] = p
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventProcessChanged, nil)
	return nil
}

// RemoveStage deletes the stage at index i.
func (s *State) RemoveStage(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.stages) {
		s.mu.Unlock()
		return fmt.Errorf("stage index %d out of range", i)
	}
	s.stages = append(s.stages[:i], s.stages[i+1:]...)
	if s.selected >= len(s.stages) {
		s.selected = len(s.stages) - 1
	}
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventProcessChanged, nil)
	return nil
}

// MoveStage shifts the stage at index i by delta positions. Out-of-range
// moves are clamped to no-ops.
func (s *State) MoveStage(i, delta int) {
	s.mu.Lock()
	j := i + delta
	if i < 0 || i >= len(s.stages) || j < 0 || j >= len(s.stages) {
		s.mu.Unlock()
		return
	}
	s.stages[i], s.stages[j] = s.stages[j], s.stages[i]
	if s.selected == i {
		s.selected = j
	}
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventProcessChanged, nil)
}

// Selected returns the selected stage index, or -1.
func (s *State) Selected() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SelectStage changes the selection and emits an event.
func (s *State) SelectStage(i int) {
	s.mu.Lock()
	if i < -1 || i >= len(s.stages) {
		s.mu.Unlock()
		return
	}
	s.selected = i
	s.mu.Unlock()
	s.Emit(EventStageSelected, i)
}

// View returns the current view settings.
func (s *State) View() project.ViewSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView replaces the view settings.
func (s *State) SetView(v project.ViewSettings) {
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	s.Emit(EventViewChanged, v)
}

// LoadTemplate replaces the process with a named catalog template.
func (s *State) LoadTemplate(name string) error {
	templates, err := s.catalog.Templates()
	if err != nil {
		return err
	}
	stages, ok := templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	pipes, err := profile.ProfilePayload{Version: 1, Pipes: stages}.ToPipes()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.processName = name
	s.ProjectPath = ""
	s.stages = pipes
	s.selected = -1
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventProcessChanged, nil)
	return nil
}

// NewProject resets the state to an empty untitled process.
func (s *State) NewProject() {
	s.mu.Lock()
	s.ProjectPath = ""
	s.processName = "Untitled Process"
	s.stages = nil
	s.selected = -1
	s.view = project.DefaultViewSettings()
	s.mu.Unlock()

	s.SetModified(false)
	s.Emit(EventProcessChanged, nil)
}

// LoadProject loads a project file and replaces the full state.
func (s *State) LoadProject(path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}
	pipes, err := proj.Process.ToPipes()
	if err != nil {
		return fmt.Errorf("project %s: %w", path, err)
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.processName = proj.Name
	s.stages = pipes
	s.selected = -1
	s.view = proj.Settings
	s.modified = false
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, path)
	s.Emit(EventProcessChanged, nil)
	return nil
}

// SaveProject writes the current state to a project file.
func (s *State) SaveProject(path string) error {
	s.mu.RLock()
	name := s.processName
	stages := make([]pipe.Pipe, len(s.stages))
	copy(stages, s.stages)
	view := s.view
	s.mu.RUnlock()

	payload, err := profile.FromPipes(stages)
	if err != nil {
		return fmt.Errorf("process has a stage with no wire form: %w", err)
	}

	proj := project.New(name)
	proj.Process = payload
	proj.Settings = view
	if err := proj.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}
