package models

import "time"

// AttemptStatus represents the status of one submission attempt.
type AttemptStatus string

const (
	AttemptPending   AttemptStatus = "pending"
	AttemptSucceeded AttemptStatus = "succeeded"
	AttemptFailed    AttemptStatus = "failed"
)

// UploadAttempt is the transient state of a single submission.
type UploadAttempt struct {
	ID          string        `json:"id"`
	Document    *SelectedFile `json:"document"`
	Template    *SelectedFile `json:"template,omitempty"`
	Status      AttemptStatus `json:"status"`
	Error       string        `json:"error,omitempty"`
	StartedAt   time.Time     `json:"startedAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
}

// NewUploadAttempt creates an UploadAttempt in pending status.
func NewUploadAttempt(id string, document, template *SelectedFile) *UploadAttempt {
	return &UploadAttempt{
		ID:        id,
		Document:  document,
		Template:  template,
		Status:    AttemptPending,
		StartedAt: time.Now(),
	}
}

// Done reports whether the attempt has resolved.
func (a *UploadAttempt) Done() bool {
	return a.Status == AttemptSucceeded || a.Status == AttemptFailed
}
