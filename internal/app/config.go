// Package app wires the console core, the presentation backends and the
// process's configuration/CLI surface together into a runnable program
// (§10 ambient stack).
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application's JSON-backed settings (§10): window/video
// presentation and a ROM directory setting. There is no audio, save-state or rewind configuration because
// those are explicit scope exclusions (§12).
type Config struct {
	Window WindowConfig `json:"window"`
	Video  VideoConfig  `json:"video"`
	Paths  PathsConfig  `json:"paths"`

	configPath string
}

// WindowConfig controls the presentation window a graphics backend opens.
type WindowConfig struct {
	Scale int `json:"scale"` // NES 256x240 resolution multiplier
}

// VideoConfig selects the presentation backend and its picture adjustments.
type VideoConfig struct {
	Backend    string  `json:"backend"` // "ebiten", "sdl2", "headless"
	Brightness float32 `json:"brightness"`
	Contrast   float32 `json:"contrast"`
	Saturation float32 `json:"saturation"`
}

// PathsConfig holds the ROM directory setting. It is loaded and saved with
// the config; LoadROM does not consult it and opens the path it is given.
type PathsConfig struct {
	ROMs string `json:"roms"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{Scale: 2},
		Video: VideoConfig{
			Backend:    "ebiten",
			Brightness: 1.0,
			Contrast:   1.0,
			Saturation: 1.0,
		},
		Paths: PathsConfig{ROMs: "./roms"},
	}
}

// LoadFromFile loads configuration from a JSON file, writing out the
// default configuration first if the file doesn't exist yet, matching the
// teacher's config bootstrap behavior.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	c.validate()
	return nil
}

// SaveToFile writes the configuration to path as indented JSON.
func (c *Config) SaveToFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	c.configPath = path
	return nil
}

func (c *Config) validate() {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	if c.Video.Backend == "" {
		c.Video.Backend = "ebiten"
	}
	if c.Video.Brightness <= 0 {
		c.Video.Brightness = 1.0
	}
	if c.Video.Contrast <= 0 {
		c.Video.Contrast = 1.0
	}
	if c.Video.Saturation < 0 {
		c.Video.Saturation = 1.0
	}
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return "./config/gones.json"
}
