package processing

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/menta2k/image-stitcher/pkg/analyzer"
)

var (
	// ErrEmptyCollection is returned when a stage receives no images
	ErrEmptyCollection = errors.New("empty image collection")
	// ErrInvalidImage is returned for a nil or zero-area input image
	ErrInvalidImage = errors.New("invalid image")
	// ErrDegenerateComposite is returned when the composite would have no area
	ErrDegenerateComposite = errors.New("degenerate composite")
	// ErrDegenerateDownscale is returned when dividing the composite by the
	// image count leaves a zero dimension
	ErrDegenerateDownscale = errors.New("degenerate downscale")
)

// Processor handles the resize, concatenation and encoding stages
type Processor struct {
	analyzer *analyzer.ImageAnalyzer
}

// NewProcessor creates a new image processor
func NewProcessor() *Processor {
	return &Processor{analyzer: analyzer.New()}
}

// MaxHeight returns the tallest height in images
func (p *Processor) MaxHeight(images []image.Image) (int, error) {
	if len(images) == 0 {
		return 0, ErrEmptyCollection
	}
	maxHeight := 0
	for i, img := range images {
		if img == nil {
			return 0, fmt.Errorf("image %d: %w", i, ErrInvalidImage)
		}
		if err := p.analyzer.ValidateImage(img); err != nil {
			return 0, fmt.Errorf("image %d: %w: %v", i, ErrInvalidImage, err)
		}
		if h := img.Bounds().Dy(); h > maxHeight {
			maxHeight = h
		}
	}
	return maxHeight, nil
}

// ScaledWidth returns the width of a w×h image scaled to targetHeight.
// The fractional part is truncated, so results lean slightly narrow.
func ScaledWidth(w, h, targetHeight int) int {
	scale := float64(targetHeight) / float64(h)
	return int(float64(w) * scale)
}

// NormalizeHeights resizes every image to the tallest height in the
// collection with bilinear interpolation, preserving aspect ratio.
func (p *Processor) NormalizeHeights(images []image.Image) ([]image.Image, error) {
	maxHeight, err := p.MaxHeight(images)
	if err != nil {
		return nil, err
	}

	resized := make([]image.Image, len(images))
	for i, img := range images {
		b := img.Bounds()
		newWidth := ScaledWidth(b.Dx(), b.Dy(), maxHeight)
		if newWidth < 1 {
			return nil, fmt.Errorf("image %d scales to zero width: %w", i, ErrInvalidImage)
		}
		resized[i] = imaging.Resize(img, newWidth, maxHeight, imaging.Linear)
	}
	return resized, nil
}

// ComposeHorizontal places images side by side, left to right. All images
// must share the same height.
func (p *Processor) ComposeHorizontal(images []image.Image) (*image.NRGBA, error) {
	if len(images) == 0 {
		return nil, ErrEmptyCollection
	}

	totalWidth, height := 0, 0
	for _, img := range images {
		b := img.Bounds()
		totalWidth += b.Dx()
		if b.Dy() > height {
			height = b.Dy()
		}
	}
	if err := p.analyzer.ValidateDimensions(totalWidth, height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateComposite, err)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, totalWidth, height))
	x := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Copy(dst, image.Pt(x, 0), img, b, draw.Src, nil)
		x += b.Dx()
	}
	return dst, nil
}

// OutputSize returns the composite dimensions divided by count using
// truncating integer division.
func OutputSize(width, height, count int) (int, int) {
	return width / count, height / count
}

// DownscaleByCount shrinks the composite by a factor equal to count using
// an area-averaging filter. A count of 1 returns an unscaled copy.
func (p *Processor) DownscaleByCount(composite image.Image, count int) (*image.NRGBA, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: image count %d", ErrDegenerateDownscale, count)
	}
	b := composite.Bounds()
	outWidth, outHeight := OutputSize(b.Dx(), b.Dy(), count)
	if err := p.analyzer.ValidateDimensions(outWidth, outHeight); err != nil {
		return nil, fmt.Errorf("%w: %dx%d divided by %d gives %dx%d",
			ErrDegenerateDownscale, b.Dx(), b.Dy(), count, outWidth, outHeight)
	}
	return imaging.Resize(composite, outWidth, outHeight, imaging.Box), nil
}
