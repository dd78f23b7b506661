// Package config loads the server and renderer configuration from a YAML
// file, with environment overrides for deployment settings.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Render holds the defaults for cross-section image generation.
type Render struct {
	Size    int     `yaml:"size"`
	Padding float64 `yaml:"padding"`
	Markers bool    `yaml:"markers"`
}

// Config is the full application configuration.
type Config struct {
	Listen         string   `yaml:"listen"`
	DataDir        string   `yaml:"data_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Render         Render   `yaml:"render"`
}

// Default returns the configuration used when no file is present. The CORS
// origins match the development dashboard's default port.
func Default() Config {
	return Config{
		Listen:  ":8080",
		DataDir: "templates",
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		Render: Render{
			Size:    800,
			Padding: 0.1,
			Markers: true,
		},
	}
}

// Load reads the configuration file and applies environment overrides. A
// missing file is not an error; defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overrides deployment settings from the environment.
// ALLOWED_ORIGINS is a comma-separated origin list.
func applyEnv(cfg *Config) {
	if configured := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); configured != "" {
		var origins []string
		for _, origin := range strings.Split(configured, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		if len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Render.Size <= 0 {
		return fmt.Errorf("render size must be positive, got %d", c.Render.Size)
	}
	if c.Render.Padding < 0 {
		return fmt.Errorf("render padding must be non-negative, got %v", c.Render.Padding)
	}
	return nil
}
