package service

import (
	"context"
	"io"

	"github.com/marcochiappo/Crimcuts/internal/storage"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
)

// PhotoUpload is an optional file attached to a form submission. Content is
// stored as received.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// baseName returns the client filename reduced to its base, or "" when the
// upload is absent or unnamed.
func (p *PhotoUpload) baseName() string {
	if p == nil || p.Content == nil {
		return ""
	}
	return storage.SafeName(p.Filename)
}

// discardPhoto removes a stored file after a failed database write. Failures
// are only logged.
func discardPhoto(ctx context.Context, photos storage.PhotoStorage, path string) {
	if path == "" {
		return
	}
	if err := photos.Delete(context.WithoutCancel(ctx), path); err != nil {
		logger.Warn("Failed to remove orphaned photo", logger.Fields{
			"path":  path,
			"error": err.Error(),
		})
	}
}
