// Package imagestitcher builds a contact sheet from a directory of images.
//
// Every PNG or JPEG in the directory is scaled to the tallest image's
// height, the results are placed side by side in file-name order, and the
// strip is shrunk by the number of images before being written as
// <dir>/output/stitched_image.jpg.
//
// Basic usage:
//
//	s := imagestitcher.New()
//	result, err := s.Stitch(context.Background(), "/path/to/images")
//	switch {
//	case errors.Is(err, imagestitcher.ErrNoImagesFound):
//		fmt.Println("No images found in the directory.")
//	case errors.Is(err, imagestitcher.ErrNoValidImages):
//		fmt.Println("No valid images loaded.")
//	case err != nil:
//		log.Fatal(err)
//	default:
//		fmt.Println("Stitched image saved to", result.OutputPath)
//	}
//
// The package consists of three components:
//
// 1. Loader (pkg/loader): finds candidate files and decodes them
// 2. Processor (pkg/processing): normalizes heights, concatenates, downscales and writes
// 3. Analyzer (pkg/analyzer): dimension checks between stages
package imagestitcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/menta2k/image-stitcher/internal/config"
	"github.com/menta2k/image-stitcher/pkg/analyzer"
	"github.com/menta2k/image-stitcher/pkg/loader"
	"github.com/menta2k/image-stitcher/pkg/processing"
	"github.com/menta2k/image-stitcher/pkg/types"
)

// Version of the image stitcher
const Version = "1.0.0"

var (
	ErrNoImagesFound       = loader.ErrNoImagesFound
	ErrNoValidImages       = loader.ErrNoValidImages
	ErrDegenerateDownscale = processing.ErrDegenerateDownscale
)

// Stitcher runs the load, normalize, compose, downscale and write stages
type Stitcher struct {
	config    config.Config
	loader    *loader.Loader
	processor *processing.Processor
	analyzer  *analyzer.ImageAnalyzer
	log       zerolog.Logger
}

// New creates a Stitcher with default configuration
func New() *Stitcher {
	s, _ := NewWithConfig(config.Default())
	return s
}

// NewWithConfig creates a Stitcher with custom configuration
func NewWithConfig(cfg *config.Config) (*Stitcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Stitcher{
		config: *cfg,
		loader: loader.NewWithConfig(loader.Config{
			SupportedFormats: cfg.Input.SupportedFormats,
			Workers:          cfg.Input.Workers,
		}),
		processor: processing.NewProcessor(),
		analyzer:  analyzer.New(),
		log:       zerolog.Nop(),
	}, nil
}

// SetLogger sets the logger for the stitcher and its loader
func (s *Stitcher) SetLogger(logger zerolog.Logger) {
	s.log = logger
	s.loader.SetLogger(logger)
}

// OutputDir returns the directory the artifact for dir is written to
func (s *Stitcher) OutputDir(dir string) string {
	return filepath.Join(dir, s.config.Output.Dir)
}

// Stitch runs the full pipeline over dir and writes the downscaled
// composite. ErrNoImagesFound and ErrNoValidImages mean there was nothing
// to stitch, and no file is written in either case.
func (s *Stitcher) Stitch(ctx context.Context, dir string) (types.Result, error) {
	results, err := s.loader.Load(ctx, dir)
	if err != nil {
		return types.Result{}, err
	}

	images, failed := loader.Images(results)
	result := types.Result{Loaded: len(images), Failed: failed}
	if len(images) == 0 {
		return result, ErrNoValidImages
	}
	s.log.Debug().Int("loaded", len(images)).Int("failed", len(failed)).Msg("images decoded")

	normalized, err := s.processor.NormalizeHeights(images)
	if err != nil {
		return result, fmt.Errorf("height normalization failed: %w", err)
	}

	composite, err := s.processor.ComposeHorizontal(normalized)
	if err != nil {
		return result, fmt.Errorf("composition failed: %w", err)
	}

	info := s.analyzer.GetImageInfo(composite)
	result.CompositeWidth, result.CompositeHeight = info.Width, info.Height
	s.log.Debug().Int("width", info.Width).Int("height", info.Height).Msg("composite built")

	output, err := s.processor.DownscaleByCount(composite, result.Loaded)
	if err != nil {
		return result, fmt.Errorf("downscale failed: %w", err)
	}

	info = s.analyzer.GetImageInfo(output)
	result.OutputWidth, result.OutputHeight = info.Width, info.Height

	path, n, err := s.processor.SaveJPEG(output, s.OutputDir(dir), s.config.Output.Filename, s.config.Output.Quality)
	if err != nil {
		return result, fmt.Errorf("failed to save stitched image: %w", err)
	}
	result.OutputPath = path
	result.BytesWritten = n

	s.log.Debug().Str("path", path).Int("width", info.Width).Int("height", info.Height).Msg("stitched image written")
	return result, nil
}

// IsNothingToStitch reports whether err means the run ended early without
// any usable input.
func IsNothingToStitch(err error) bool {
	return errors.Is(err, ErrNoImagesFound) || errors.Is(err, ErrNoValidImages)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
