package store

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

const gcsTimeout = 30 * time.Second

// GCSStore is a Cloud Storage-backed implementation of Store.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCS creates a new GCSStore with the specified bucket.
func NewGCS(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSStore{
		client: client,
		bucket: bucket,
	}, nil
}

// Get returns the stored bytes and true, or nil and false if not found.
func (s *GCSStore) Get(ctx context.Context, key, ext string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, gcsTimeout)
	defer cancel()

	reader, err := s.client.Bucket(s.bucket).Object(key + ext).NewReader(ctx)
	if err != nil {
		return nil, false
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores data under key with the given extension.
func (s *GCSStore) Put(ctx context.Context, key, ext string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, gcsTimeout)
	defer cancel()

	writer := s.client.Bucket(s.bucket).Object(key + ext).NewWriter(ctx)
	writer.ContentType = ContentType(ext)

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

// GetJSON retrieves and unmarshals a JSON value.
func (s *GCSStore) GetJSON(ctx context.Context, key string, v any) bool {
	data, ok := s.Get(ctx, key, ".json")
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// PutJSON marshals and stores a value as JSON.
func (s *GCSStore) PutJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, ".json", data)
}

// Close closes the GCS client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}
