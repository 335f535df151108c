package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/doctoppt/client/internal/models"
)

// WriteFile creates name under a temp dir with data and returns it as a
// staged-file candidate.
func WriteFile(t *testing.T, name string, data []byte) *models.SelectedFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return models.NewSelectedFile(path, int64(len(data)))
}

// Candidate builds an in-memory candidate with no backing file.
func Candidate(name string, size int64) *models.SelectedFile {
	return &models.SelectedFile{Name: name, Size: size}
}
