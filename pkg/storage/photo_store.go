package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// allowed poster image extensions
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// AllowedFile reports whether the original filename carries an allowed
// image extension.
func AllowedFile(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// PhotoStore persists uploaded poster images.
type PhotoStore interface {
	Save(ctx context.Context, r io.Reader, originalName string) (string, error)
	Remove(name string) error
}

// LocalPhotoStore writes files under a single directory on local disk.
type LocalPhotoStore struct {
	dir      string
	maxBytes int64
	log      *zap.Logger
}

func NewLocalPhotoStore(dir string, maxSizeMB int64, log *zap.Logger) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}

	return &LocalPhotoStore{
		dir:      dir,
		maxBytes: maxSizeMB << 20,
		log:      log.With(zap.String("storage", "photos")),
	}, nil
}

// Save writes the stream to disk under a collision-resistant name derived
// from the sanitized original filename and returns the stored name.
func (s *LocalPhotoStore) Save(ctx context.Context, r io.Reader, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !AllowedFile(originalName) {
		return "", fmt.Errorf("invalid file type %s: allowed png, jpg, jpeg, gif", filepath.Ext(originalName))
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(originalName))
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		s.log.Error("Failed to create upload file", zap.Error(err), zap.String("name", name))
		return "", fmt.Errorf("create upload file: %w", err)
	}

	// One byte past the cap detects oversized uploads
	written, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		s.log.Error("Failed to write upload file", zap.Error(err), zap.String("name", name))
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(path)
		return "", fmt.Errorf("invalid file: larger than %d MB", s.maxBytes>>20)
	}

	s.log.Info("Photo stored",
		zap.String("name", name),
		zap.Int64("bytes", written),
	)

	return name, nil
}

// Remove deletes a stored photo. Callers treat failure as advisory: the
// error is returned for logging but must not abort the calling operation.
func (s *LocalPhotoStore) Remove(name string) error {
	if name == "" {
		return nil
	}

	// Stored names never contain separators, keep it that way
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid photo name %s", name)
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove photo %s: %w", name, err)
	}

	return nil
}

// sanitizeFilename strips path components and squashes anything outside
// [a-zA-Z0-9._-] so the name is safe to join into the upload dir.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))

	var b strings.Builder
	for _, c := range base {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '.' || c == '-' || c == '_':
			b.WriteRune(c)
		default:
			b.WriteRune('_')
		}
	}

	out := b.String()
	if out == "" || strings.Trim(out, "._") == "" {
		out = "upload" + strings.ToLower(filepath.Ext(base))
	}

	return out
}
