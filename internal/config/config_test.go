package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"png", "jpg", "jpeg"}, cfg.Input.SupportedFormats)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "stitched_image.jpg", cfg.Output.Filename)
	assert.Equal(t, 95, cfg.Output.Quality)
	assert.Equal(t, 1, cfg.Input.Workers)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty formats", func(c *Config) { c.Input.SupportedFormats = nil }},
		{"zero workers", func(c *Config) { c.Input.Workers = 0 }},
		{"quality too low", func(c *Config) { c.Output.Quality = 0 }},
		{"quality too high", func(c *Config) { c.Output.Quality = 101 }},
		{"absolute output dir", func(c *Config) { c.Output.Dir = "/tmp/out" }},
		{"filename with dir", func(c *Config) { c.Output.Filename = "a/b.jpg" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Output.Quality = 80
	cfg.Input.Workers = 4
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output":{"quality":70}}`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.Output.Quality)
	assert.Equal(t, "stitched_image.jpg", cfg.Output.Filename)
	assert.Equal(t, []string{"png", "jpg", "jpeg"}, cfg.Input.SupportedFormats)
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}
