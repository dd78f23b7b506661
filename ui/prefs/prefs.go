// Package prefs persists dashboard preferences between sessions: the template
// data directory, the last used file dialog directory, the view settings, and
// the window size.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"draw-pipe/internal/project"
)

const prefsFile = "preferences.json"

const (
	keyDataDir      = "dataDirectory"
	keyLastDir      = "lastDirectory"
	keyMarkers      = "markers"
	keyPadding      = "padding"
	keyRenderSize   = "renderSize"
	keyWindowWidth  = "windowWidth"
	keyWindowHeight = "windowHeight"
)

// DefaultDataDir is used when no data directory has been stored yet.
const DefaultDataDir = "templates"

// Prefs stores application preferences as a key-value map.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
}

// Load reads preferences from ~/.config/draw-pipe/preferences.json.
// Returns a Prefs with defaults if the file doesn't exist.
func Load() *Prefs {
	p := &Prefs{
		values: make(map[string]interface{}),
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	dir := filepath.Join(configDir, "draw-pipe")
	p.path = filepath.Join(dir, prefsFile)

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	_ = json.Unmarshal(data, &p.values)
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// DataDir returns the stored template data directory, or DefaultDataDir.
func (p *Prefs) DataDir() string {
	if dir := p.str(keyDataDir); dir != "" {
		return dir
	}
	return DefaultDataDir
}

// SetDataDir stores the template data directory.
func (p *Prefs) SetDataDir(dir string) {
	p.setValue(keyDataDir, dir)
}

// LastDir returns the last directory used in a file dialog, or "".
func (p *Prefs) LastDir() string {
	return p.str(keyLastDir)
}

// SetLastDir stores the last directory used in a file dialog.
func (p *Prefs) SetLastDir(dir string) {
	p.setValue(keyLastDir, dir)
}

// ViewSettings returns the stored view settings, falling back to the
// project defaults for any unset field.
func (p *Prefs) ViewSettings() project.ViewSettings {
	def := project.DefaultViewSettings()
	return project.ViewSettings{
		Markers: p.boolean(keyMarkers, def.Markers),
		Padding: p.float(keyPadding, def.Padding),
		Size:    int(p.float(keyRenderSize, float64(def.Size))),
	}
}

// SetViewSettings stores the view settings.
func (p *Prefs) SetViewSettings(v project.ViewSettings) {
	p.setValue(keyMarkers, v.Markers)
	p.setValue(keyPadding, v.Padding)
	p.setValue(keyRenderSize, float64(v.Size))
}

// WindowSize returns the stored main window size, or the given fallback.
func (p *Prefs) WindowSize(fallbackW, fallbackH float32) (float32, float32) {
	w := p.float(keyWindowWidth, float64(fallbackW))
	h := p.float(keyWindowHeight, float64(fallbackH))
	if w <= 0 || h <= 0 {
		return fallbackW, fallbackH
	}
	return float32(w), float32(h)
}

// SetWindowSize stores the main window size.
func (p *Prefs) SetWindowSize(w, h float32) {
	p.setValue(keyWindowWidth, float64(w))
	p.setValue(keyWindowHeight, float64(h))
}

func (p *Prefs) setValue(key string, val interface{}) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

func (p *Prefs) str(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if s, ok := p.values[key].(string); ok {
		return s
	}
	return ""
}

// float reads a numeric preference. Values loaded from JSON are float64.
func (p *Prefs) float(key string, fallback float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	switch n := p.values[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return fallback
}

func (p *Prefs) boolean(key string, fallback bool) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if b, ok := p.values[key].(bool); ok {
		return b
	}
	return fallback
}
