// handlers_upload.go - Document submission handlers
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/doctoppt/client/internal/models"
	"github.com/doctoppt/client/internal/storage"
	"github.com/doctoppt/client/internal/validation"
	"github.com/doctoppt/client/internal/web"
	"github.com/labstack/echo/v4"
)

// ReplyMode selects how a successful upload is answered.
type ReplyMode string

const (
	// ReplyJSON answers {success: true, filename, redirect}.
	ReplyJSON ReplyMode = "json"
	// ReplyRedirect answers 302 to the processing page.
	ReplyRedirect ReplyMode = "redirect"
	// ReplyHTML answers an HTML page with no machine readable location.
	ReplyHTML ReplyMode = "html"
	// ReplyError stores the upload then fails with 500.
	ReplyError ReplyMode = "error"
)

// ParseReplyMode validates a reply mode name.
func ParseReplyMode(s string) (ReplyMode, error) {
	switch m := ReplyMode(s); m {
	case ReplyJSON, ReplyRedirect, ReplyHTML, ReplyError:
		return m, nil
	}
	return "", fmt.Errorf("unknown reply mode %q (want json, redirect, html or error)", s)
}

// DefaultAllowedExtensions are the extensions the server accepts in either field.
var DefaultAllowedExtensions = []string{"pdf", "docx", "txt", "md", "pptx"}

// UploadHandlerImpl implements the UploadHandler interface
type UploadHandlerImpl struct {
	store   storage.Store
	mode    ReplyMode
	allowed []string
	logger  *slog.Logger
}

// NewUploadHandler creates a new upload handler instance
func NewUploadHandler(store storage.Store, mode ReplyMode, logger *slog.Logger) UploadHandler {
	return &UploadHandlerImpl{
		store:   store,
		mode:    mode,
		allowed: DefaultAllowedExtensions,
		logger:  logger,
	}
}

// HandleUploadPage serves a minimal upload form
func (h *UploadHandlerImpl) HandleUploadPage(c echo.Context) error {
	return c.Render(http.StatusOK, web.UploadPage, map[string]string{
		"DocumentAccept": acceptList(validation.Document.Extensions),
		"TemplateAccept": acceptList(validation.Template.Extensions),
		"SubmitLabel":    "Generate presentation",
	})
}

// HandleUpload accepts a multipart document and optional template
func (h *UploadHandlerImpl) HandleUpload(c echo.Context) error {
	doc, err := c.FormFile("document")
	if err != nil {
		return formFileError("document", err)
	}
	if doc.Filename == "" {
		return NewNoFileError("document")
	}
	if !allowedFile(doc.Filename, h.allowed) {
		return NewUnsupportedTypeError(doc.Filename)
	}

	tmpl, err := c.FormFile("template")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		tmpl = nil
	case err != nil:
		return formFileError("template", err)
	case tmpl.Filename == "":
		tmpl = nil
	case !allowedFile(tmpl.Filename, h.allowed):
		return NewUnsupportedTypeError(tmpl.Filename)
	}

	stored, err := h.save("document", doc)
	if err != nil {
		return err
	}
	if tmpl != nil {
		if _, err := h.save("template", tmpl); err != nil {
			return err
		}
	}

	h.logger.Info("file uploaded", "filename", stored.Filename, "size", stored.Size, "mode", h.mode)

	location := ProcessingPath + "/" + url.PathEscape(stored.Filename)
	switch h.mode {
	case ReplyRedirect:
		return c.Redirect(http.StatusFound, location)
	case ReplyHTML:
		return renderProcessing(c, stored.Filename)
	case ReplyError:
		return NewInternalError("Internal server error", nil)
	default:
		return c.JSON(http.StatusOK, models.UploadResponse{
			Success:  true,
			Redirect: location,
			Filename: stored.Filename,
		})
	}
}

// HandleRecentUploads lists what the emulator has received
func (h *UploadHandlerImpl) HandleRecentUploads(c echo.Context) error {
	files, err := h.store.List(20)
	if err != nil {
		return NewInternalError("failed to list uploads", err)
	}
	return c.JSON(http.StatusOK, files)
}

func (h *UploadHandlerImpl) save(field string, fh *multipart.FileHeader) (*models.StoredUpload, error) {
	filename := SecureFilename(fh.Filename)
	if filename == "" {
		return nil, NewBadRequestError("invalid file name", nil)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	info, err := h.store.Save(field, filename, fh.Header.Get("Content-Type"), src)
	if err != nil {
		return nil, NewInternalError("failed to save file", err)
	}
	return info, nil
}

func formFileError(field string, err error) error {
	if isTooLarge(err) {
		return err
	}
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return NewNoFileError(field)
	}
	return NewBadRequestError("invalid multipart form", err)
}

func acceptList(exts []string) string {
	return "." + strings.Join(exts, ",.")
}
