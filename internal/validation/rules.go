// Package validation holds the client-side checks applied to staged files.
package validation

import (
	"fmt"
	"strings"

	"github.com/doctoppt/client/internal/format"
	"github.com/doctoppt/client/internal/models"
	"github.com/samber/lo"
)

// MiB is one binary megabyte.
const MiB int64 = 1024 * 1024

// Ceilings and allow-lists are fixed client constants.
const (
	DocumentMaxSize = 16 * MiB
	TemplateMaxSize = 32 * MiB
)

var (
	DocumentExtensions = []string{"pdf", "docx", "txt", "md"}
	TemplateExtensions = []string{"pptx"}
)

// Role tells which ceiling and allow-list apply to a file.
type Role string

const (
	RoleDocument Role = "document"
	RoleTemplate Role = "template"
)

// Rule is the ordered set of checks for one role.
type Rule struct {
	Role        Role
	Extensions  []string
	MaxSize     int64
	RejectEmpty bool
}

// Document is the rule for the uploaded source document.
var Document = Rule{
	Role:        RoleDocument,
	Extensions:  DocumentExtensions,
	MaxSize:     DocumentMaxSize,
	RejectEmpty: true,
}

// Template is the rule for the optional presentation template.
var Template = Rule{
	Role:       RoleTemplate,
	Extensions: TemplateExtensions,
	MaxSize:    TemplateMaxSize,
}

// Check runs the rule against f: extension, then ceiling, then emptiness.
// The first failing check decides the reason.
func (r Rule) Check(f *models.SelectedFile) Result {
	if f == nil || f.Name == "" {
		if r.Role == RoleTemplate {
			return OK()
		}
		return fail(ReasonMissingFile, "Select a document to continue")
	}

	ext := f.Extension()
	if !r.Allows(ext) {
		if r.Role == RoleTemplate {
			return fail(ReasonTemplateType, fmt.Sprintf("Template must be %s", dotted(r.Extensions)))
		}
		return fail(ReasonUnsupportedType,
			fmt.Sprintf("Unsupported file type: .%s. Use: %s", ext, listExtensions(r.Extensions)))
	}

	if f.Size > r.MaxSize {
		if r.Role == RoleTemplate {
			return fail(ReasonTemplateTooLarge, fmt.Sprintf("Template too large (%s). Maximum: %s",
				format.FormatSize(f.Size), format.FormatSize(r.MaxSize)))
		}
		return fail(ReasonTooLarge, fmt.Sprintf("File too large (%s). Maximum: %s",
			format.FormatSize(f.Size), format.FormatSize(r.MaxSize)))
	}

	if r.RejectEmpty && f.Size <= 0 {
		return fail(ReasonEmptyFile, "File is empty")
	}

	return OK()
}

// Allows reports whether ext is on the rule's allow-list.
func (r Rule) Allows(ext string) bool {
	return lo.Contains(r.Extensions, strings.ToLower(ext))
}

// CheckDocument validates f as the source document.
func CheckDocument(f *models.SelectedFile) Result {
	return Document.Check(f)
}

// CheckTemplate validates f as the optional template. A nil template is valid.
func CheckTemplate(f *models.SelectedFile) Result {
	return Template.Check(f)
}

// listExtensions renders "PDF, DOCX, TXT or MD".
func listExtensions(exts []string) string {
	upper := lo.Map(exts, func(ext string, _ int) string {
		return strings.ToUpper(ext)
	})
	if len(upper) <= 1 {
		return strings.Join(upper, "")
	}
	return strings.Join(upper[:len(upper)-1], ", ") + " or " + upper[len(upper)-1]
}

func dotted(exts []string) string {
	return strings.Join(lo.Map(exts, func(ext string, _ int) string {
		return "." + ext
	}), " or ")
}
