// Package gallery stores trip photos as plain files in a directory.
package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minsukim/tripdeck/internal/apperr"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Store is a flat photo directory.
type Store struct {
	dir string
}

// NewStore creates the photo directory if needed and returns a store for it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("gallery: mkdir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// safeName validates that name is a plain filename with an allowed image
// extension and returns the absolute path under the photo directory.
func (s *Store) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("gallery: filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("gallery: invalid filename: %s", name)
	}
	if !imageExtensions[strings.ToLower(filepath.Ext(cleaned))] {
		return "", fmt.Errorf("gallery: unsupported file type: %s", name)
	}
	return filepath.Join(s.dir, cleaned), nil
}

// Save writes an uploaded photo. An existing photo with the same name is
// replaced, matching re-uploads of the same shot.
func (s *Store) Save(name string, data []byte) error {
	abs, err := s.safeName(name)
	if err != nil {
		return err
	}
	return os.WriteFile(abs, data, 0o644)
}

// List returns the stored photo filenames in sorted order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("gallery: list: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Path resolves a stored photo's absolute path for serving.
func (s *Store) Path(name string) (string, error) {
	abs, err := s.safeName(name)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", apperr.ErrNotFound
		}
		return "", err
	}
	return abs, nil
}
