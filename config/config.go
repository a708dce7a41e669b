// Package config loads the sadt configuration file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"sadt/diagram"
	"sadt/editor"
	"sadt/geometry"
)

// Config holds sadt configuration.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Terminal TerminalConfig `toml:"terminal"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// EditorConfig tunes interaction. Radii and tolerances are in screen units.
type EditorConfig struct {
	ConnectionPointRadius float64 `toml:"connection_point_radius"`
	StartProbeFactor      float64 `toml:"start_probe_factor"`
	EndProbeFactor        float64 `toml:"end_probe_factor"`
	ArrowTolerance        float64 `toml:"arrow_tolerance"`
	ZoomMin               float64 `toml:"zoom_min"`
	ZoomMax               float64 `toml:"zoom_max"`
	ZoomStep              float64 `toml:"zoom_step"`
	NodeWidth             float64 `toml:"node_width"`
	NodeHeight            float64 `toml:"node_height"`
	DefaultAlgorithm      string  `toml:"default_algorithm"`
	HistoryDepth          int     `toml:"history_depth"`
}

// TerminalConfig maps terminal cells to screen units.
type TerminalConfig struct {
	CellWidth   float64 `toml:"cell_width"`
	CellHeight  float64 `toml:"cell_height"`
	InitialZoom float64 `toml:"initial_zoom"`
	Unicode     bool    `toml:"unicode"`
}

// ServerConfig selects the HTTP address and the store behind it.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	Store       string `toml:"store"` // "file" or "postgres"
	Dir         string `toml:"dir"`
	DatabaseURL string `toml:"database_url"`
}

// LogConfig controls the structured log.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	s := editor.DefaultSettings()
	return &Config{
		Editor: EditorConfig{
			ConnectionPointRadius: s.ConnectionPointRadius,
			StartProbeFactor:      s.StartProbeFactor,
			EndProbeFactor:        s.EndProbeFactor,
			ArrowTolerance:        s.ArrowTolerance,
			ZoomMin:               s.Zoom.Min,
			ZoomMax:               s.Zoom.Max,
			ZoomStep:              s.ZoomStep,
			NodeWidth:             120,
			NodeHeight:            60,
			DefaultAlgorithm:      diagram.DefaultAlgorithm,
			HistoryDepth:          500,
		},
		Terminal: TerminalConfig{CellWidth: 8, CellHeight: 16, InitialZoom: 1, Unicode: true},
		Server:   ServerConfig{Addr: ":8080", Store: "file", Dir: "diagrams"},
		Log:      LogConfig{Level: "info"},
	}
}

// ConfigDir returns the sadt config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sadt")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path over the defaults. A missing file is
// not an error. An empty path means Path().
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, or to Path() when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate rejects settings the editor cannot work with.
func (c *Config) Validate() error {
	e := c.Editor
	switch {
	case e.ConnectionPointRadius <= 0:
		return fmt.Errorf("editor.connection_point_radius must be positive")
	case e.StartProbeFactor <= 0 || e.EndProbeFactor <= 0:
		return fmt.Errorf("editor probe factors must be positive")
	case e.ArrowTolerance <= 0:
		return fmt.Errorf("editor.arrow_tolerance must be positive")
	case e.ZoomMin <= 0 || e.ZoomMax < e.ZoomMin:
		return fmt.Errorf("editor zoom range [%g, %g] is invalid", e.ZoomMin, e.ZoomMax)
	case e.ZoomStep <= 1:
		return fmt.Errorf("editor.zoom_step must be greater than 1")
	case e.NodeWidth <= 0 || e.NodeHeight <= 0:
		return fmt.Errorf("editor node size must be positive")
	case !diagram.IsKnownAlgorithm(e.DefaultAlgorithm):
		return fmt.Errorf("editor.default_algorithm %q is not one of %s",
			e.DefaultAlgorithm, strings.Join(diagram.Algorithms, ", "))
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return fmt.Errorf("terminal cell size must be positive")
	}
	if c.Server.Store != "file" && c.Server.Store != "postgres" {
		return fmt.Errorf("server.store must be \"file\" or \"postgres\", got %q", c.Server.Store)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Settings converts the [editor] section for the interaction layer.
func (c *Config) Settings() editor.Settings {
	s := editor.DefaultSettings()
	s.ConnectionPointRadius = c.Editor.ConnectionPointRadius
	s.StartProbeFactor = c.Editor.StartProbeFactor
	s.EndProbeFactor = c.Editor.EndProbeFactor
	s.ArrowTolerance = c.Editor.ArrowTolerance
	s.Zoom = geometry.ZoomLimits{Min: c.Editor.ZoomMin, Max: c.Editor.ZoomMax}
	s.ZoomStep = c.Editor.ZoomStep
	return s
}

// DiagramOptions returns the options new diagrams are created with.
func (c *Config) DiagramOptions() []diagram.Option {
	return []diagram.Option{
		diagram.WithNodeSize(c.Editor.NodeWidth, c.Editor.NodeHeight),
		diagram.WithDefaultAlgorithm(c.Editor.DefaultAlgorithm),
	}
}

// SlogLevel parses Level; empty means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
