package main

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunWithoutFolder(t *testing.T) {
	code, out, _ := runCLI(t)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No folder path provided")
	assert.Contains(t, out, "Usage:")
}

func TestRunEmptyFolder(t *testing.T) {
	dir := t.TempDir()
	code, out, _ := runCLI(t, dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No images found in the directory.")
}

func TestRunCorruptOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.png"), []byte("nope"), 0644))

	code, out, _ := runCLI(t, dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No valid images loaded.")
}

func TestRunStitches(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, imaging.Save(imaging.New(20, 10, color.NRGBA{255, 0, 0, 255}), filepath.Join(dir, "a.png")))
	require.NoError(t, imaging.Save(imaging.New(10, 20, color.NRGBA{0, 0, 255, 255}), filepath.Join(dir, "b.jpg")))

	code, out, _ := runCLI(t, "--quality", "80", "--workers", "2", dir)
	assert.Equal(t, 0, code)

	expected := filepath.Join(dir, "output", "stitched_image.jpg")
	assert.Contains(t, out, "Stitched image saved to "+expected)
	assert.FileExists(t, expected)
}

func TestRunDegenerateFails(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		require.NoError(t, imaging.Save(imaging.New(2, 2, color.NRGBA{0, 255, 0, 255}), filepath.Join(dir, name)))
	}

	code, _, errOut := runCLI(t, dir)
	assert.Equal(t, 1, code)
	assert.Equal(t, 1, strings.Count(errOut, "degenerate downscale"), errOut)
	assert.NoFileExists(t, filepath.Join(dir, "output", "stitched_image.jpg"))
}

func TestRunInvalidFlags(t *testing.T) {
	dir := t.TempDir()

	code, _, errOut := runCLI(t, "--quality", "0", dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "quality")

	code, _, _ = runCLI(t, "--config", filepath.Join(dir, "missing.json"), dir)
	assert.Equal(t, 1, code)
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, imaging.Save(imaging.New(8, 8, color.NRGBA{9, 9, 9, 255}), filepath.Join(dir, "a.gif")))
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"input":{"supported_formats":["gif"]}}`), 0644))

	code, out, _ := runCLI(t, "--config", cfgPath, dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Stitched image saved to")
}
