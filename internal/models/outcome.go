package models

// OutcomeKind classifies how the upload endpoint answered.
type OutcomeKind string

const (
	// OutcomeStructured is a JSON {success: true} body.
	OutcomeStructured OutcomeKind = "structured"
	// OutcomeRedirect is an HTTP redirect issued by the server.
	OutcomeRedirect OutcomeKind = "redirect"
	// OutcomeSynthesized is an opaque page body; the follow-up location is derived client-side.
	OutcomeSynthesized OutcomeKind = "synthesized"
)

// Outcome is the classified result of a successful submission.
type Outcome struct {
	Kind      OutcomeKind `json:"kind"`
	Location  string      `json:"location"`
	Filename  string      `json:"filename,omitempty"`
	AttemptID string      `json:"attemptId,omitempty"`
}

// UploadResponse is the structured body the upload endpoint may return.
type UploadResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect,omitempty"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}
