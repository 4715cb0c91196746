package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/marcochiappo/Crimcuts/pkg/logger"
)

// LocalStorage writes photos below <staticDir>/barber_images and hands back
// paths of the form "static/barber_images/<name>" that gin serves at /static.
type LocalStorage struct {
	staticDir string
	photoDir  string
}

func NewLocalStorage(staticDir string) (*LocalStorage, error) {
	if staticDir == "" {
		staticDir = "static"
	}
	photoDir := filepath.Join(staticDir, PhotoDir)
	if err := os.MkdirAll(photoDir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo directory: %w", err)
	}
	return &LocalStorage{staticDir: staticDir, photoDir: photoDir}, nil
}

// Dir returns the directory holding the photo files.
func (s *LocalStorage) Dir() string {
	return s.photoDir
}

func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	name = SafeName(name)
	if name == "" {
		return "", fmt.Errorf("invalid photo name")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(s.photoDir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}

	written, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(dst)
		if copyErr != nil {
			return "", fmt.Errorf("write photo file: %w", copyErr)
		}
		return "", fmt.Errorf("close photo file: %w", closeErr)
	}

	logger.Debug("Photo stored on disk", logger.Fields{
		"file":         dst,
		"bytes":        written,
		"content_type": contentType,
	})
	return s.PublicPath(name), nil
}

// PublicPath is the value stored in the database for a file name.
func (s *LocalStorage) PublicPath(name string) string {
	return path.Join("static", PhotoDir, name)
}

// Delete removes a file previously returned by Save. Missing files are ignored.
func (s *LocalStorage) Delete(ctx context.Context, stored string) error {
	prefix := path.Join("static", PhotoDir) + "/"
	if !strings.HasPrefix(stored, prefix) {
		return fmt.Errorf("photo path %q is not managed by local storage", stored)
	}
	name := SafeName(strings.TrimPrefix(stored, prefix))
	if name == "" {
		return fmt.Errorf("invalid photo path %q", stored)
	}

	err := os.Remove(filepath.Join(s.photoDir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove photo file: %w", err)
	}
	return nil
}

// List returns the stored paths of the files in the photo directory. A
// non-zero modifiedBefore skips files changed at or after that time.
func (s *LocalStorage) List(ctx context.Context, modifiedBefore time.Time) ([]string, error) {
	entries, err := os.ReadDir(s.photoDir)
	if err != nil {
		return nil, fmt.Errorf("read photo directory: %w", err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !modifiedBefore.IsZero() {
			info, err := entry.Info()
			if err != nil || !info.ModTime().Before(modifiedBefore) {
				continue
			}
		}
		paths = append(paths, s.PublicPath(entry.Name()))
	}
	return paths, ctx.Err()
}
