package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileStore keeps each document in its own file under a base directory. It
// backs portable profiles and, over an in-memory filesystem, tests.
type FileStore struct {
	fs  afero.Fs
	dir string
	hub changeHub
}

// NewFileStore creates the base directory if needed and returns a store
// over it.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error: cannot create store directory: %w", err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

// fileName maps a document key to its on-disk path. Keys are slugs already;
// the replacement only guards against separators sneaking in.
func (s *FileStore) fileName(key string) string {
	key = strings.NewReplacer("/", "_", "\\", "_").Replace(key)
	return filepath.Join(s.dir, key+".json")
}

// Get returns the document stored under key, or nil when absent.
func (s *FileStore) Get(key string) ([]byte, error) {
	raw, err := afero.ReadFile(s.fs, s.fileName(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error: failed to read document %q: %w", key, err)
	}
	return raw, nil
}

// Set writes the document under key. The write goes to a sibling temp file
// first and is renamed into place, so readers never observe a torn document.
func (s *FileStore) Set(key string, value []byte) error {
	name := s.fileName(key)
	tmp := name + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("error: failed to write document %q: %w", key, err)
	}
	if err := s.fs.Rename(tmp, name); err != nil {
		return fmt.Errorf("error: failed to replace document %q: %w", key, err)
	}
	s.hub.notify(key, value)
	return nil
}

// OnChange subscribes to writes of key and returns an unsubscribe func.
func (s *FileStore) OnChange(key string, fn func(value []byte)) func() {
	return s.hub.on(key, fn)
}

// Keys lists the stored document keys.
func (s *FileStore) Keys() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("error: failed to list documents: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}

// Delete removes the document under key. Deleting an absent key is a no-op.
func (s *FileStore) Delete(key string) error {
	err := s.fs.Remove(s.fileName(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error: failed to delete document %q: %w", key, err)
	}
	return nil
}
