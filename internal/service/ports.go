package service

import "context"

// Synthesizer converts text to narration audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// ObjectStore stores named blobs under a bucket: generated audio and
// uploaded source documents. Upload returns the object's public URL.
type ObjectStore interface {
	Upload(ctx context.Context, objectName, contentType string, data []byte) (string, error)
	Download(ctx context.Context, objectName string) ([]byte, error)
	Delete(ctx context.Context, objectName string) error
}
