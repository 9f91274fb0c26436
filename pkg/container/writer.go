package container

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageWriter encodes a pixel buffer into one lossless container format.
type ImageWriter interface {
	// Format returns the format name this writer produces.
	Format() string

	// Encode writes img to w in this writer's format.
	Encode(w io.Writer, img image.Image) error
}

// lossyFormats are containers whose re-encoding alters pixel values.
// Writing to them is rejected outright. GIF quantizes to a 256-color
// palette, which clobbers LSBs just as thoroughly as JPEG's DCT.
var lossyFormats = map[string]bool{
	"jpeg": true,
	"webp": true,
	"gif":  true,
}

// WriterRegistry holds the available lossless writers, keyed by format.
type WriterRegistry struct {
	writers map[string]ImageWriter
	mu      sync.RWMutex
}

// NewWriterRegistry creates a registry with every built-in lossless writer
// registered: png (the reference output), bmp and tiff.
func NewWriterRegistry() *WriterRegistry {
	r := &WriterRegistry{writers: make(map[string]ImageWriter)}
	r.Register(pngWriter{})
	r.Register(bmpWriter{})
	r.Register(tiffWriter{})
	return r
}

// Register adds a writer to the registry.
func (r *WriterRegistry) Register(w ImageWriter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writers[w.Format()] = w
}

// WriterForFormat returns the writer for a format, or an error when the
// format is lossy or unknown.
func (r *WriterRegistry) WriterForFormat(format string) (ImageWriter, error) {
	if lossyFormats[format] {
		return nil, fmt.Errorf("%w: %s re-encoding would destroy embedded data", ErrLossyOutput, format)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.writers[format]
	if !ok {
		return nil, fmt.Errorf("%w: no writer for %q", ErrUnsupportedFormat, format)
	}
	return w, nil
}

// SupportedOutputFormats returns the formats this registry can write.
func (r *WriterRegistry) SupportedOutputFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var formats []string
	for format := range r.writers {
		formats = append(formats, format)
	}
	return formats
}

// WriteImage saves img to filePath in the format implied by the path's
// extension. Lossy formats are rejected before the file is created.
func (r *WriterRegistry) WriteImage(filePath string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	format, ok := SupportedFormats[ext]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	w, err := r.WriterForFormat(format)
	if err != nil {
		return err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := w.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

type pngWriter struct{}

func (pngWriter) Format() string { return "png" }

func (pngWriter) Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

type bmpWriter struct{}

func (bmpWriter) Format() string { return "bmp" }

func (bmpWriter) Encode(w io.Writer, img image.Image) error {
	return bmp.Encode(w, img)
}

type tiffWriter struct{}

func (tiffWriter) Format() string { return "tiff" }

func (tiffWriter) Encode(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}
