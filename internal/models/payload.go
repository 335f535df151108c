package models

// FormPayload is what the upload form submits: a document and an optional template.
type FormPayload struct {
	Document *SelectedFile
	Template *SelectedFile
}
