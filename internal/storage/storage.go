package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/marcochiappo/Crimcuts/config"
)

// PhotoDir is the folder, relative to the static root or bucket, holding all
// uploaded photos.
const PhotoDir = "barber_images"

// PhotoStorage persists uploaded photos and returns the path stored in the
// database.
type PhotoStorage interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// New builds the storage selected by PHOTO_STORAGE.
func New(ctx context.Context, storageCfg config.StorageConfig, s3Cfg config.S3Config) (PhotoStorage, error) {
	switch storageCfg.Driver {
	case "", "local":
		return NewLocalStorage(storageCfg.StaticDir)
	case "s3":
		return NewS3Storage(ctx, s3Cfg.Region, s3Cfg.Bucket, s3Cfg.AccessKeyID, s3Cfg.SecretAccessKey, s3Cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported photo storage %q", storageCfg.Driver)
	}
}

// SafeName reduces a client supplied filename to its base name so it cannot
// point outside the photo directory.
func SafeName(filename string) string {
	name := strings.ReplaceAll(filename, `\`, "/")
	name = filepath.Base(name)
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
