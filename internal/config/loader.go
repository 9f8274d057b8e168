package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Display is the geometry of the secondary screen the panel, the player and
// the slideshow occupy.
type Display struct {
	X      int `json:"x" yaml:"x" toml:"x"`
	Y      int `json:"y" yaml:"y" toml:"y"`
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// Slideshow tunes the slide transition engine.
type Slideshow struct {
	// Transition is one of "fade", "fromleft", "abrupt".
	Transition string `json:"transition" yaml:"transition" toml:"transition"`
}

// CORS configures the optional CORS middleware of the status API.
type CORS struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Config holds runtime parameters for the panel client.
// Zero values mean "unspecified" and are replaced by Default() values in ApplyDefaults.
type Config struct {
	ServerURL    string    `json:"server_url" yaml:"server_url" toml:"server_url"`
	Hostname     string    `json:"hostname" yaml:"hostname" toml:"hostname"`
	SpotDir      string    `json:"spot_dir" yaml:"spot_dir" toml:"spot_dir"`
	SlideDir     string    `json:"slide_dir" yaml:"slide_dir" toml:"slide_dir"`
	Player       string    `json:"player" yaml:"player" toml:"player"`
	CameraSource string    `json:"camera_source" yaml:"camera_source" toml:"camera_source"`
	SettingsDB   string    `json:"settings_db" yaml:"settings_db" toml:"settings_db"`
	HTTPAddr     string    `json:"http_addr" yaml:"http_addr" toml:"http_addr"`
	LogLevel     string    `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogPretty    bool      `json:"log_pretty" yaml:"log_pretty" toml:"log_pretty"`
	HaltCommand  string    `json:"halt_command" yaml:"halt_command" toml:"halt_command"`
	Display      Display   `json:"display" yaml:"display" toml:"display"`
	Slideshow    Slideshow `json:"slideshow" yaml:"slideshow" toml:"slideshow"`
	CORS         CORS      `json:"cors" yaml:"cors" toml:"cors"`

	// StatusTimeoutMS bounds how long a status API request waits for the
	// event loop. Negative disables the bound.
	StatusTimeoutMS int `json:"status_timeout_ms" yaml:"status_timeout_ms" toml:"status_timeout_ms"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
