package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/filmmemories/backend/internal/core/domain"
	"github.com/filmmemories/backend/internal/core/ports"
)

// uploadPrefix is the logical namespace for movie images in the bucket.
const uploadPrefix = "film-memories"

// objectPutter is the slice of ObjectStore the uploader needs.
type objectPutter interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Uploader is the media upload pipeline: validate, bound, relay. Validation
// failures reject the upload before any bytes reach the store; a store
// failure aborts the enclosing create operation.
type Uploader struct {
	store objectPutter
	proc  *ImageProcessor
	log   zerolog.Logger
}

func NewUploader(store objectPutter, proc *ImageProcessor, log zerolog.Logger) *Uploader {
	return &Uploader{store: store, proc: proc, log: log}
}

// Upload implements ports.MediaUploader.
func (u *Uploader) Upload(ctx context.Context, up ports.ImageUpload) (string, error) {
	if up.Reader == nil {
		return "", domain.ErrMissingFile
	}
	if up.Size > MaxUploadSize {
		return "", domain.ErrImageTooLarge
	}
	if !u.proc.Allowed(up.ContentType) {
		return "", domain.ErrUnsupportedImageType
	}

	// The declared size is client-controlled; re-check while reading.
	data, err := io.ReadAll(io.LimitReader(up.Reader, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > MaxUploadSize {
		return "", domain.ErrImageTooLarge
	}

	normalized, err := u.proc.Normalize(data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.jpg", uploadPrefix, uuid.NewString())
	url, err := u.store.Put(ctx, key, normalized, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	u.log.Debug().
		Str("key", key).
		Str("original", up.Filename).
		Int("bytes", len(normalized)).
		Msg("image uploaded")

	return url, nil
}
