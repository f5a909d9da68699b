package processing

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/menta2k/image-stitcher/internal/utils"
)

// EncodeJPEG encodes img as JPEG at the given quality
func (p *Processor) EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteArtifact writes data to dir/filename, creating dir if needed and
// replacing any existing file. The data goes to a temporary file first and
// is renamed into place, so a failed write never leaves a partial file.
func (p *Processor) WriteArtifact(dir, filename string, data []byte) (string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filename+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to set output file mode: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to move output file into place: %w", err)
	}
	return path, nil
}

// SaveJPEG encodes img and writes it to dir/filename
func (p *Processor) SaveJPEG(img image.Image, dir, filename string, quality int) (string, int64, error) {
	data, err := p.EncodeJPEG(img, quality)
	if err != nil {
		return "", 0, err
	}
	path, err := p.WriteArtifact(dir, filename, data)
	if err != nil {
		return "", 0, err
	}
	return path, int64(len(data)), nil
}
