package models

// SubmitControl is a snapshot of the submit button.
type SubmitControl struct {
	Enabled bool   `json:"enabled"`
	Busy    bool   `json:"busy"`
	Label   string `json:"label"`
}
