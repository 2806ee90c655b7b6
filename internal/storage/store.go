package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Sanitize replaces every character outside [A-Za-z0-9._-] with an
// underscore so the name is safe for both the filesystem and URLs.
func Sanitize(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// FileStore writes uploaded originals and annotated copies into a single
// uploads directory and hands out stable references to them.
type FileStore struct {
	dir string
}

// NewFileStore creates the uploads directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the uploads directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// SaveOriginal stores raw upload bytes under a timestamp-prefixed sanitized
// name and returns the stored filename. Names within the same second for the
// same upload name can collide; the last write wins.
func (s *FileStore) SaveOriginal(data []byte, originalName string) (string, error) {
	timestamp := time.Now().UTC().Format("20060102150405")
	filename := fmt.Sprintf("%s_%s", timestamp, Sanitize(originalName))

	fullPath := filepath.Join(s.dir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save original %s: %w", filename, err)
	}

	return filename, nil
}

// AnnotatedName derives the annotated-copy filename for a stored original,
// so the pairing is recoverable from the name alone.
func AnnotatedName(storedFilename string) string {
	return "predicted_" + storedFilename
}

// SaveAnnotated stores annotated image bytes next to the original and
// returns the stored path with forward-slash separators regardless of the
// host filesystem convention.
func (s *FileStore) SaveAnnotated(data []byte, storedFilename string) (string, error) {
	filename := AnnotatedName(storedFilename)

	fullPath := filepath.Join(s.dir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save annotated image %s: %w", filename, err)
	}

	return filepath.ToSlash(fullPath), nil
}
