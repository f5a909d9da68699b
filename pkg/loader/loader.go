// Package loader finds candidate image files in a directory and decodes
// them into opaque RGB rasters.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/menta2k/image-stitcher/internal/utils"
	"github.com/menta2k/image-stitcher/pkg/types"
)

var (
	// ErrNoImagesFound is returned when a directory has no file with a supported extension
	ErrNoImagesFound = errors.New("no images found in the directory")
	// ErrNoValidImages is returned when every candidate failed to decode
	ErrNoValidImages = errors.New("no valid images loaded")
)

// Config holds configuration for the loader
type Config struct {
	SupportedFormats []string
	Workers          int
}

// Loader enumerates and decodes input images
type Loader struct {
	config Config
	log    zerolog.Logger
}

// New creates a Loader accepting png, jpg and jpeg with sequential decoding
func New() *Loader {
	return NewWithConfig(Config{
		SupportedFormats: []string{"png", "jpg", "jpeg"},
		Workers:          1,
	})
}

// NewWithConfig creates a Loader with custom configuration
func NewWithConfig(config Config) *Loader {
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Loader{config: config, log: zerolog.Nop()}
}

// SetLogger sets the logger used to report skipped files
func (l *Loader) SetLogger(logger zerolog.Logger) {
	l.log = logger
}

// ListCandidates returns the regular files directly inside dir whose
// extension is supported, sorted by name.
func (l *Loader) ListCandidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !utils.HasExtension(entry.Name(), l.config.SupportedFormats) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	return files, nil
}

// Load decodes every candidate in dir. The returned slice is in the same
// order as ListCandidates regardless of how many workers are used.
func (l *Loader) Load(ctx context.Context, dir string) ([]types.LoadResult, error) {
	files, err := l.ListCandidates(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoImagesFound
	}

	results := make([]types.LoadResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.config.Workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := l.DecodeFile(path)
			if err != nil {
				results[i] = types.Failed{Path: path, Err: err}
				return nil
			}
			results[i] = types.Decoded{Path: path, Image: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		if f, ok := r.(types.Failed); ok {
			l.log.Warn().Str("file", f.Path).Err(f.Err).Msg("skipping unreadable image")
		}
	}
	return results, nil
}

// DecodeFile reads and decodes a single image file
func (l *Loader) DecodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	img, err := l.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	if utils.GetFileExtension(path) == "webp" {
		if wimg, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
			return toOpaque(wimg), nil
		}
	}
	return nil, err
}

// Decode decodes an image from a reader and drops any alpha channel.
// JPEG EXIF orientation is applied, so the result has display dimensions.
func (l *Loader) Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("failed to decode image: empty raster %dx%d", b.Dx(), b.Dy())
	}
	return toOpaque(img), nil
}

// Images splits load results into decoded images and failures
func Images(results []types.LoadResult) ([]image.Image, []types.Failed) {
	var images []image.Image
	var failed []types.Failed
	for _, r := range results {
		switch v := r.(type) {
		case types.Decoded:
			images = append(images, v.Image)
		case types.Failed:
			failed = append(failed, v)
		}
	}
	return images, failed
}

// toOpaque converts img to NRGBA with every alpha value set to 255,
// keeping the stored color channels as they are.
func toOpaque(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
