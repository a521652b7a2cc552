// Package gcs provides object storage for uploaded documents and
// synthesized audio, backed by Google Cloud Storage.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"cloud.google.com/go/storage"
)

// Store reads and writes objects in a single bucket.
type Store struct {
	logger *slog.Logger
	client *storage.Client
	bucket string
}

// NewStore creates a Store for the given bucket using ambient Google
// Cloud credentials.
func NewStore(ctx context.Context, logger *slog.Logger, bucket string) (*Store, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if bucket == "" {
		return nil, errors.New("bucket cannot be empty")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Store{
		logger: logger.With(slog.String("component", "object_store")),
		client: client,
		bucket: bucket,
	}, nil
}

// Upload writes data to the named object, makes it publicly readable,
// and returns its public URL.
func (s *Store) Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	obj := s.client.Bucket(s.bucket).Object(objectName)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to publish object %s: %w", objectName, err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName)
	s.logger.DebugContext(ctx, "uploaded object",
		slog.String("object", objectName),
		slog.Int("bytes", len(data)))

	return url, nil
}

// Download reads the named object in full.
func (s *Store) Download(ctx context.Context, objectName string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s: %w", objectName, err)
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", objectName, err)
	}
	return data, nil
}

// Delete removes the named object. Deleting an object that is already
// gone is not an error.
func (s *Store) Delete(ctx context.Context, objectName string) error {
	err := s.client.Bucket(s.bucket).Object(objectName).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", objectName, err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.client.Close()
}
