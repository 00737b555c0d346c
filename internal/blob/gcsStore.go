package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

// GCSStore backs the blob interface with a Google Cloud Storage bucket.
type GCSStore struct {
	bucket        *storage.BucketHandle
	bucketName    string
	publicBaseURL string
	logger        *logger_i.Logger
}

func NewGCSStore(ctx context.Context, bucketName string, publicBaseURL string) (*GCSStore, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("NewGCSStore: bucket name cannot be empty")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSStore{
		bucket:        client.Bucket(bucketName),
		bucketName:    bucketName,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger_i.NewLogger("GCSBlobStore"),
	}, nil
}

func (s *GCSStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	writer := s.bucket.Object(key).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize GCS write: %w", err)
	}
	s.logger.Debug("Stored blob", "key", key, "bytes", len(data))
	return s.publicURL(key), nil
}

func (s *GCSStore) Get(ctx context.Context, key string) ([]byte, error) {
	reader, err := s.bucket.Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open GCS object %s: %w", key, err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read GCS object %s: %w", key, err)
	}
	return data, nil
}

func (s *GCSStore) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, key)
}
