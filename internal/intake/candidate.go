package intake

import (
	"fmt"
	"os"

	"github.com/doctoppt/client/internal/models"
	"github.com/gabriel-vasile/mimetype"
)

// Stat builds a candidate from a file on disk and sniffs its content type.
func Stat(path string) (*models.SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat candidate: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("candidate %s is a directory", path)
	}

	f := models.NewSelectedFile(path, info.Size())
	if info.Size() > 0 {
		if mt, err := mimetype.DetectFile(path); err == nil {
			f.MimeType = mt.String()
		}
	}
	return f, nil
}
