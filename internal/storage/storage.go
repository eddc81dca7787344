// Package storage persists uploaded documents and derived artifacts on
// the local filesystem, keyed by relative storage keys.
package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates no object exists for the given key.
var ErrNotFound = errors.New("object not found")

// Store persists binary objects under hierarchical keys.
type Store interface {
	// Write persists the contents of r under key, creating parent
	// directories as needed.
	Write(key string, r io.Reader) (int64, error)

	// Read returns the contents stored under key.
	Read(key string) ([]byte, error)

	// Open returns a reader for the object stored under key. The
	// caller must close it.
	Open(key string) (io.ReadCloser, error)

	// Delete removes the object stored under key. Deleting a missing
	// key is not an error.
	Delete(key string) error

	// Path returns the absolute filesystem path for key.
	Path(key string) string

	// URL returns the public URL for the object stored under key.
	URL(key string) string
}

type fileStore struct {
	root    string
	baseURL string
	logger  *slog.Logger
}

// New creates a filesystem-backed store rooted at the configured
// directory.
func New(config *Config, logger *slog.Logger) (Store, error) {
	root, err := filepath.Abs(config.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}

	return &fileStore{
		root:    root,
		baseURL: config.PublicBaseURL,
		logger:  logger.With("system", "storage"),
	}, nil
}

func (s *fileStore) Write(key string, r io.Reader) (int64, error) {
	path, err := s.resolve(key)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("write file: %w", err)
	}

	s.logger.Debug("object written", "key", key, "bytes", n)
	return n, nil
}

func (s *fileStore) Read(key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (s *fileStore) Open(key string) (io.ReadCloser, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func (s *fileStore) Delete(key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (s *fileStore) Path(key string) string {
	path, err := s.resolve(key)
	if err != nil {
		return filepath.Join(s.root, filepath.Clean(key))
	}
	return path
}

func (s *fileStore) URL(key string) string {
	return s.baseURL + "/" + strings.TrimPrefix(key, "/")
}

// resolve maps a key to an absolute path, rejecting keys that escape
// the storage root.
func (s *fileStore) resolve(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	path := filepath.Join(s.root, cleaned)
	if !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return path, nil
}
