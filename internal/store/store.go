// Package store keeps page snapshots: a local directory in development and
// a Cloud Storage bucket in production.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is a blob store addressed by key and file extension.
type Store interface {
	Put(ctx context.Context, key, ext string, data []byte) error
	Get(ctx context.Context, key, ext string) ([]byte, bool)
	PutJSON(ctx context.Context, key string, v any) error
	GetJSON(ctx context.Context, key string, v any) bool
}

// Open returns a GCS store when bucket is set and a local store in dir
// otherwise.
func Open(ctx context.Context, bucket, dir string) (Store, error) {
	if bucket != "" {
		s, err := NewGCS(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("opening GCS bucket %s: %w", bucket, err)
		}
		log.Printf("store: GCS bucket %s", bucket)
		return s, nil
	}
	s, err := NewLocal(dir)
	if err != nil {
		return nil, fmt.Errorf("opening local store %s: %w", dir, err)
	}
	log.Printf("store: local directory %s", dir)
	return s, nil
}

// ContentType maps a file extension to the MIME type objects are stored with.
func ContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".json":
		return "application/json"
	case ".html":
		return "text/html; charset=utf-8"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// LocalStore is a file-based implementation of Store.
type LocalStore struct {
	dir string
	mu  sync.RWMutex
}

// NewLocal creates a new LocalStore with the specified directory.
func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Get returns the stored bytes and true, or nil and false if not found.
func (s *LocalStore) Get(ctx context.Context, key, ext string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key, ext))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores data under key with the given extension.
func (s *LocalStore) Put(ctx context.Context, key, ext string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key, ext)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetJSON retrieves and unmarshals a JSON value.
func (s *LocalStore) GetJSON(ctx context.Context, key string, v any) bool {
	data, ok := s.Get(ctx, key, ".json")
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// PutJSON marshals and stores a value as JSON.
func (s *LocalStore) PutJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(ctx, key, ".json", data)
}

func (s *LocalStore) path(key, ext string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key)+ext)
}
