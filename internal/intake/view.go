package intake

// Preview is the panel describing the staged document.
type Preview struct {
	Visible bool   `json:"visible"`
	Name    string `json:"name,omitempty"`
	Size    string `json:"size,omitempty"`
	Icon    string `json:"icon,omitempty"`
	Status  string `json:"status,omitempty"` // Upload progress line, set while submitting
}

// View is a snapshot of everything the intake area displays.
type View struct {
	DropZoneVisible bool    `json:"dropZoneVisible"`
	DragActive      bool    `json:"dragActive"`
	Preview         Preview `json:"preview"`
	InputValue      string  `json:"inputValue,omitempty"`
	TemplateName    string  `json:"templateName,omitempty"`
}

func initialView() View {
	return View{DropZoneVisible: true}
}
