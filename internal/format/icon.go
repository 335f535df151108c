package format

var iconClasses = map[string]string{
	"pdf":  "bi-filetype-pdf file-pdf",
	"docx": "bi-file-earmark-word file-docx",
	"txt":  "bi-file-earmark-text file-txt",
	"md":   "bi-markdown file-md",
	"pptx": "bi-file-earmark-ppt file-pptx",
}

// DefaultIconClass is used for extensions without a dedicated icon.
const DefaultIconClass = "bi-file-earmark"

// IconClass returns the icon class for a lowercase extension.
func IconClass(ext string) string {
	if icon, ok := iconClasses[ext]; ok {
		return icon
	}
	return DefaultIconClass
}
