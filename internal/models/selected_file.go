// Package models contains domain types for the DocToPPT upload client.
package models

import (
	"path/filepath"
	"strings"
)

// SelectedFile is a file staged, or about to be staged, for upload.
type SelectedFile struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Path     string `json:"path,omitempty"`     // Local path the bytes are read from
	MimeType string `json:"mimeType,omitempty"` // Sniffed content type, empty until detected
}

// NewSelectedFile builds a SelectedFile for a local path. Name is the base name.
func NewSelectedFile(path string, size int64) *SelectedFile {
	return &SelectedFile{
		Name: filepath.Base(path),
		Size: size,
		Path: path,
	}
}

// Extension returns the lowercase text after the last dot of the name.
// A name without a dot yields the whole lowercased name.
func (f *SelectedFile) Extension() string {
	name := strings.ToLower(f.Name)
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Clone returns a copy that can be handed out without sharing state.
func (f *SelectedFile) Clone() *SelectedFile {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
