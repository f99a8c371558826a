package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"

	"github.com/filmmemories/backend/internal/core/domain"
)

const (
	// MaxUploadSize is the hard limit on accepted image payloads.
	MaxUploadSize = 10 << 20

	// maxDimension bounds stored images to control storage cost. Images are
	// scaled down to fit within maxDimension x maxDimension; smaller images
	// are left untouched.
	maxDimension = 1200

	jpegQuality = 90
)

// allowedImageTypes is the MIME whitelist checked before any upload attempt.
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// ImageProcessor validates uploaded images and applies the bounding transform.
type ImageProcessor struct{}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Allowed reports whether the declared content type is on the whitelist.
func (p *ImageProcessor) Allowed(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// Normalize decodes the image, scales it down to fit within the dimension
// bound, and re-encodes it as JPEG. Undecodable payloads fail with
// ErrUnsupportedImageType regardless of the declared content type.
func (p *ImageProcessor) Normalize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedImageType, err)
	}

	resized := imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
