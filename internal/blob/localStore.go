package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

// LocalStore keeps blobs under a directory on disk. It is the dev and test
// backend; deployments point GCS at the same interface.
type LocalStore struct {
	baseDir string
	logger  *logger_i.Logger
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &LocalStore{
		baseDir: baseDir,
		logger:  logger_i.NewLogger("LocalBlobStore"),
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := s.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("failed to create blob prefix: %w", err)
	}
	if err := os.WriteFile(path, data, 0640); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	s.logger.Debug("Stored blob", "key", key, "bytes", len(data))
	return "file://" + path, nil
}

func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	return data, nil
}

func (s *LocalStore) pathFor(key string) string {
	// keys are owner-scoped slash paths; keep them inside baseDir
	clean := filepath.FromSlash(strings.TrimPrefix(key, "/"))
	return filepath.Join(s.baseDir, clean)
}
