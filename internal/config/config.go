package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Input  InputConfig  `json:"input"`
	Output OutputConfig `json:"output"`
	Log    LogConfig    `json:"log"`
}

// InputConfig controls which files are picked up and how they are decoded
type InputConfig struct {
	SupportedFormats []string `json:"supported_formats"`
	Workers          int      `json:"workers"`
}

// OutputConfig controls where and how the stitched image is written
type OutputConfig struct {
	Dir      string `json:"dir"`
	Filename string `json:"filename"`
	Quality  int    `json:"quality"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `json:"level"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Input: InputConfig{
			SupportedFormats: []string{"png", "jpg", "jpeg"},
			Workers:          1,
		},
		Output: OutputConfig{
			Dir:      "output",
			Filename: "stitched_image.jpg",
			Quality:  95,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Fields missing from
// the file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Input.SupportedFormats) == 0 {
		return fmt.Errorf("input.supported_formats cannot be empty")
	}

	if c.Input.Workers < 1 {
		return fmt.Errorf("input.workers must be positive")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	if c.Output.Dir == "" || filepath.IsAbs(c.Output.Dir) {
		return fmt.Errorf("output.dir must be a non-empty relative path")
	}

	if c.Output.Filename == "" || filepath.Base(c.Output.Filename) != c.Output.Filename {
		return fmt.Errorf("output.filename must be a plain file name")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "image-stitcher", "config.json")
}
