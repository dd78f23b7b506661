// Package project provides working-session persistence for the dashboard: a
// named draw process plus view settings, stored as a versioned JSON file.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"draw-pipe/internal/profile"
)

// FileExt is the project file extension.
const FileExt = ".pipeproj"

// ViewSettings holds the per-project rendering preferences.
type ViewSettings struct {
	Markers bool    `json:"markers"`
	Padding float64 `json:"padding"`
	Size    int     `json:"size"`
}

// DefaultViewSettings returns the view defaults for new projects.
func DefaultViewSettings() ViewSettings {
	return ViewSettings{Markers: true, Padding: 0.1, Size: 800}
}

// File is a draw-pipe project file.
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Description string    `json:"description,omitempty"`

	// The editable draw process, in the same wire form as templates.
	Process profile.ProfilePayload `json:"process"`

	Settings ViewSettings `json:"settings"`
}

// New creates a project with default settings and an empty process.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Process:  profile.ProfilePayload{Version: 1},
		Settings: DefaultViewSettings(),
	}
}

// Load reads and validates a project file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", path, err)
	}
	if err := proj.Process.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project %s: %w", path, err)
	}
	if proj.Settings.Size <= 0 {
		proj.Settings = DefaultViewSettings()
	}
	return &proj, nil
}

// Save writes the project, stamping the modification time.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
