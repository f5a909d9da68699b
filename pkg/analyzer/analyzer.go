package analyzer

import (
	"fmt"
	"image"

	"github.com/menta2k/image-stitcher/pkg/types"
)

// ImageAnalyzer inspects raster dimensions between pipeline stages
type ImageAnalyzer struct {
	config Config
}

// Config holds configuration for the image analyzer
type Config struct {
	MinImageSize int
}

// New creates a new ImageAnalyzer that accepts any non-empty raster
func New() *ImageAnalyzer {
	return &ImageAnalyzer{
		config: Config{
			MinImageSize: 1,
		},
	}
}

// GetImageInfo returns basic information about an image
func (a *ImageAnalyzer) GetImageInfo(img image.Image) types.ImageInfo {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	info := types.ImageInfo{
		Width:  width,
		Height: height,
		Area:   width * height,
	}
	if height > 0 {
		info.AspectRatio = float64(width) / float64(height)
	}
	return info
}

// ValidateImage checks if an image meets minimum requirements
func (a *ImageAnalyzer) ValidateImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("image is nil")
	}
	bounds := img.Bounds()
	return a.ValidateDimensions(bounds.Dx(), bounds.Dy())
}

// ValidateDimensions checks that a width and height both reach the minimum size
func (a *ImageAnalyzer) ValidateDimensions(width, height int) error {
	if width < a.config.MinImageSize || height < a.config.MinImageSize {
		return fmt.Errorf("image too small: %dx%d (minimum: %d)",
			width, height, a.config.MinImageSize)
	}
	return nil
}
