// Package config provides the launch configuration for the game: which
// backend to use, the window title and the score font. Physics constants are
// fixed in the game package and intentionally not configurable here.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvBackend     = "PONG_BACKEND"
	EnvWindowTitle = "PONG_WINDOW_TITLE"
	EnvFontPath    = "PONG_FONT_PATH"
	EnvFontSize    = "PONG_FONT_SIZE"
)

// Config holds all launch settings
type Config struct {
	// Rendering backend name ("ebiten" or "sdl")
	Backend string `json:"backend"`

	Window WindowConfig `json:"window"`
	Font   FontConfig   `json:"font"`
}

// WindowConfig defines the game window
type WindowConfig struct {
	Title string `json:"title"`
}

// FontConfig defines the font used for the score display
type FontConfig struct {
	Path string  `json:"path"` // TrueType font file, required at startup
	Size float64 `json:"size"` // Pixel size
}

// DefaultConfig returns the settings the game ships with
func DefaultConfig() *Config {
	return &Config{
		Backend: "ebiten",
		Window: WindowConfig{
			Title: "Pong",
		},
		Font: FontConfig{
			Path: "Nexa-Heavy.ttf",
			Size: 24,
		},
	}
}

// LoadConfig loads config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables already set are left alone and a missing file is
// not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBackend); ok && v != "" {
		c.Backend = v
	}
	if v, ok := lookup(EnvWindowTitle); ok && v != "" {
		c.Window.Title = v
	}
	if v, ok := lookup(EnvFontPath); ok && v != "" {
		c.Font.Path = v
	}
	if v, ok := lookup(EnvFontSize); ok && v != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvFontSize, v, err)
		}
		c.Font.Size = size
	}
	return nil
}

// Validate checks the settings needed to start.
func (c *Config) Validate() error {
	if c.Backend == "" {
		return errors.New("backend is required")
	}
	if c.Font.Path == "" {
		return errors.New("font path is required")
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.Font.Size)
	}
	return nil
}
