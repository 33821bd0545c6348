package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ObjectStore persists rendered images and returns a public URL for each
// saved object. Implementations report failure by error; callers decide
// whether to fall back to inline data URLs.
type ObjectStore interface {
	Save(data []byte, path string) (string, error)
}

// DiskStore is an ObjectStore backed by a local directory. Objects are
// served under baseURL (the caller mounts the directory as a static
// route).
type DiskStore struct {
	Root    string
	BaseURL string
}

// Save writes data under the store root and returns its public URL.
// The path must stay inside the root; anything that escapes after
// cleaning is rejected.
func (s *DiskStore) Save(data []byte, path string) (string, error) {
	clean := filepath.Clean("/" + path)[1:]
	if clean == "" || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("storage: invalid object path %q", path)
	}
	full := filepath.Join(s.Root, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write: %w", err)
	}
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + filepath.ToSlash(clean), nil
}
