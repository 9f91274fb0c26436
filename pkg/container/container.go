/*
Package container handles getting pixel buffers in and out of image files.

Reading accepts any format the registered decoders understand (PNG, JPEG,
GIF, BMP, TIFF, WebP). Writing is restricted to lossless formats: a lossy
container would re-encode pixel values and destroy embedded LSBs, so asking
for one fails before any file is touched.
*/
package container

import (
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrLossyOutput reports a request to save into a format whose re-encoding
// would alter pixel values and destroy embedded data.
var ErrLossyOutput = errors.New("lossy output format rejected")

// ErrUnsupportedFormat reports a file whose format no decoder or writer
// handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// SupportedFormats maps file extensions to format names for both reading
// and format detection.
var SupportedFormats = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tiff": "tiff",
	".tif":  "tiff",
	".webp": "webp",
}

// DetectFormat determines the image format of a file, first by extension,
// then by sniffing its content.
func DetectFormat(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if format, ok := SupportedFormats[ext]; ok {
		return format, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	contentType := http.DetectContentType(buffer)
	switch {
	case strings.Contains(contentType, "image/png"):
		return "png", nil
	case strings.Contains(contentType, "image/jpeg"):
		return "jpeg", nil
	case strings.Contains(contentType, "image/gif"):
		return "gif", nil
	case strings.Contains(contentType, "image/bmp"):
		return "bmp", nil
	case strings.Contains(contentType, "image/tiff"):
		return "tiff", nil
	case strings.Contains(contentType, "image/webp"):
		return "webp", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}
}

// ReadImage decodes the image file at filePath into a pixel buffer and
// reports the container format it was stored in.
func ReadImage(filePath string) (image.Image, string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}
