package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"
)

// TemplateFilePayload is the on-disk form of one template file: an optional
// display name plus a versioned stage list.
type TemplateFilePayload struct {
	Name    string        `json:"name,omitempty"`
	Version int           `json:"version"`
	Pipes   []PipePayload `json:"pipes"`
}

const catalogCacheKey = "templates"

// Catalog loads named pipe templates from *.json files in a data directory.
// The parsed map is cached until Invalidate is called; the directory itself is
// treated as read-mostly.
type Catalog struct {
	dir   string
	cache *cache.Cache
}

// NewCatalog creates a catalog over the given data directory.
func NewCatalog(dir string) *Catalog {
	return &Catalog{
		dir:   dir,
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Dir returns the data directory backing the catalog.
func (c *Catalog) Dir() string {
	return c.dir
}

// Templates returns the named templates, loading and validating the directory
// on first use. Files are processed in filename order; a template's name is
// its trimmed payload name, or the upper-cased file stem when the payload
// carries none. Duplicate names are an error.
func (c *Catalog) Templates() (map[string][]PipePayload, error) {
	if cached, ok := c.cache.Get(catalogCacheKey); ok {
		return cached.(map[string][]PipePayload), nil
	}

	templates, err := c.load()
	if err != nil {
		return nil, err
	}
	c.cache.Set(catalogCacheKey, templates, cache.NoExpiration)
	return templates, nil
}

// Invalidate drops the cached catalog so the next Templates call re-reads the
// directory.
func (c *Catalog) Invalidate() {
	c.cache.Delete(catalogCacheKey)
}

func (c *Catalog) load() (map[string][]PipePayload, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]PipePayload{}, nil
		}
		return nil, fmt.Errorf("reading template dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	templates := make(map[string][]PipePayload, len(names))
	for _, name := range names {
		parsed, err := LoadTemplateFile(filepath.Join(c.dir, name))
		if err != nil {
			return nil, err
		}

		templateName := normalizedTemplateName(parsed, name)
		if _, exists := templates[templateName]; exists {
			return nil, fmt.Errorf("duplicate template name %q", templateName)
		}
		templates[templateName] = parsed.Pipes
	}
	return templates, nil
}

// normalizedTemplateName prefers the payload's trimmed name, falling back to
// the upper-cased file stem.
func normalizedTemplateName(t TemplateFilePayload, filename string) string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	return strings.ToUpper(strings.TrimSuffix(filename, filepath.Ext(filename)))
}

// LoadTemplateFile reads and validates one template file.
func LoadTemplateFile(path string) (TemplateFilePayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TemplateFilePayload{}, err
	}

	var parsed TemplateFilePayload
	if err := json.Unmarshal(data, &parsed); err != nil {
		return TemplateFilePayload{}, fmt.Errorf("invalid JSON in template file %s: %w", filepath.Base(path), err)
	}
	for i, stage := range parsed.Pipes {
		if err := stage.Validate(); err != nil {
			return TemplateFilePayload{}, fmt.Errorf("invalid template %s pipe %d: %w", filepath.Base(path), i, err)
		}
	}
	return parsed, nil
}

// SaveTemplateFile writes a template file with indented JSON.
func SaveTemplateFile(path string, t TemplateFilePayload) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
