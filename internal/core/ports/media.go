package ports

import (
	"context"
	"io"
)

// ImageUpload describes a single client-submitted image before validation.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// MediaUploader validates an uploaded image, applies the bounding transform,
// and relays it to the object store, returning the durable URL reference.
type MediaUploader interface {
	Upload(ctx context.Context, up ImageUpload) (string, error)
}
