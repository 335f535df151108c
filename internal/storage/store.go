// Package storage keeps the files received by the conversion server emulator.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/doctoppt/client/internal/models"
	"github.com/google/uuid"
)

// Store defines the interface for received-upload storage.
type Store interface {
	Save(field, filename, contentType string, r io.Reader) (*models.StoredUpload, error)
	Get(filename string) (*models.StoredUpload, error)
	List(limit int) ([]*models.StoredUpload, error)
	Delete(filename string) error
	GetFilePath(filename string) (string, error)
}

// LocalStore implements Store using the local filesystem. Uploads are
// keyed by sanitized filename; a later upload with the same name
// replaces the earlier one, as a plain save to the upload folder would.
type LocalStore struct {
	mu        sync.RWMutex
	uploadDir string
	files     map[string]*models.StoredUpload
}

// NewLocalStore creates a new LocalStore.
func NewLocalStore(uploadDir string) (*LocalStore, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	return &LocalStore{
		uploadDir: uploadDir,
		files:     make(map[string]*models.StoredUpload),
	}, nil
}

// Save writes r to the upload directory under filename.
func (s *LocalStore) Save(field, filename, contentType string, r io.Reader) (*models.StoredUpload, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return nil, fmt.Errorf("invalid filename: %q", filename)
	}
	path := filepath.Join(s.uploadDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing file: %w", err)
	}

	info := &models.StoredUpload{
		ID:          uuid.New().String(),
		Filename:    filename,
		Field:       field,
		Size:        size,
		ContentType: contentType,
		UploadedAt:  time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[filename] = info

	return info, nil
}

// Get retrieves upload metadata by filename.
func (s *LocalStore) Get(filename string) (*models.StoredUpload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.files[filename]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filename)
	}
	return info, nil
}

// List returns the most recent uploads. A limit <= 0 returns all.
func (s *LocalStore) List(limit int) ([]*models.StoredUpload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*models.StoredUpload, 0, len(s.files))
	for _, info := range s.files {
		list = append(list, info)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].UploadedAt.After(list[j].UploadedAt)
	})

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Delete removes an upload from storage.
func (s *LocalStore) Delete(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[filename]; !ok {
		return fmt.Errorf("file not found: %s", filename)
	}

	path := filepath.Join(s.uploadDir, filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting file: %w", err)
	}

	delete(s.files, filename)
	return nil
}

// GetFilePath returns the path of a stored upload.
func (s *LocalStore) GetFilePath(filename string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.files[filename]; !ok {
		return "", fmt.Errorf("file not found: %s", filename)
	}
	return filepath.Join(s.uploadDir, filename), nil
}
