package models

import "time"

// StoredUpload is a document received by the conversion server emulator.
type StoredUpload struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"` // sanitized name the processing page is keyed by
	Field       string    `json:"field"`    // multipart field: document or template
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
