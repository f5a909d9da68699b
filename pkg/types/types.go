package types

import "image"

// LoadResult is the outcome of decoding a single candidate file.
// It is either Decoded or Failed.
type LoadResult interface {
	// Source returns the path the result was produced from
	Source() string
	isLoadResult()
}

// Decoded holds a successfully decoded, opaque image
type Decoded struct {
	Path  string
	Image image.Image
}

// Failed records a file that could not be read or decoded
type Failed struct {
	Path string
	Err  error
}

func (d Decoded) Source() string { return d.Path }
func (f Failed) Source() string  { return f.Path }

func (Decoded) isLoadResult() {}
func (Failed) isLoadResult()  {}

// Error implements error so a Failed can be logged or wrapped directly
func (f Failed) Error() string {
	return f.Path + ": " + f.Err.Error()
}

// Unwrap returns the underlying read or decode error
func (f Failed) Unwrap() error { return f.Err }

// ImageInfo contains basic image metadata
type ImageInfo struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	Area        int     `json:"area"`
}

// Result summarizes a completed stitching run
type Result struct {
	OutputPath      string   `json:"output_path"`
	Loaded          int      `json:"loaded"`
	Failed          []Failed `json:"-"`
	CompositeWidth  int      `json:"composite_width"`
	CompositeHeight int      `json:"composite_height"`
	OutputWidth     int      `json:"output_width"`
	OutputHeight    int      `json:"output_height"`
	BytesWritten    int64    `json:"bytes_written"`
}
