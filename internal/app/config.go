// Package app provides application configuration, state, and events.
package app

import (
	"encoding/json"
	"fmt"
	"os"

	"poker-templater/internal/segment"
	"poker-templater/internal/session"
	"poker-templater/internal/template"
)

// Config is the application configuration loaded from config.json.
type Config struct {
	WindowTitle          string `json:"window_title"`
	GameWindowWidth      int    `json:"game_window_width"`
	GameWindowHeight     int    `json:"game_window_height"`
	ScreenshotIntervalMS int    `json:"screenshot_interval_ms"`

	ScreenshotsDir string `json:"screenshots_dir"`
	RegionsCutDir  string `json:"regions_cut_dir"`
	TemplatesDir   string `json:"templates_dir"`
	RegionsPath    string `json:"regions_path"`

	Segmentation segment.Params       `json:"segmentation"`
	ManualLayout session.ManualLayout `json:"manual_layout"`
	Taxonomy     template.Taxonomy    `json:"taxonomy"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		WindowTitle:          "TON Poker",
		GameWindowWidth:      631,
		GameWindowHeight:     958,
		ScreenshotIntervalMS: 2000,
		ScreenshotsDir:       "screenshots",
		RegionsCutDir:        "regions_cut",
		TemplatesDir:         "templates",
		RegionsPath:          "regions.json",
		Segmentation:         segment.DefaultParams(),
		ManualLayout:         session.DefaultManualLayout(),
		Taxonomy:             template.DefaultTaxonomy(),
	}
}

// LoadConfig reads config.json, filling omitted fields with defaults.
// A missing file yields the defaults without error; only a corrupt
// file is fatal.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration back to disk.
func SaveConfig(cfg Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config: %w", err)
	}
	return nil
}
