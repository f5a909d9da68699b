package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileExtension(t *testing.T) {
	assert.Equal(t, "jpg", GetFileExtension("a/b/photo.JPG"))
	assert.Equal(t, "png", GetFileExtension("x.tar.png"))
	assert.Equal(t, "", GetFileExtension("README"))
}

func TestHasExtension(t *testing.T) {
	exts := []string{"png", ".jpg", "jpeg"}

	for _, name := range []string{"a.png", "B.PNG", "c.Jpg", "d.JPEG"} {
		assert.True(t, HasExtension(name, exts), name)
	}
	for _, name := range []string{"a.gif", "png", "notes.txt", "archive.png.bak"} {
		assert.False(t, HasExtension(name, exts), name)
	}
}

func TestEnsureDirToleratesExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
	assert.False(t, FileExists(dir))
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, FileExists(path))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1.0 KB", FormatFileSize(1024))
	assert.Equal(t, "1.5 MB", FormatFileSize(1536*1024))
}
