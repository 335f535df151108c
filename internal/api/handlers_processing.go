// handlers_processing.go - Processing page and status handlers
package api

import (
	"net/http"
	"net/url"

	"github.com/doctoppt/client/internal/models"
	"github.com/doctoppt/client/internal/storage"
	"github.com/doctoppt/client/internal/web"
	"github.com/labstack/echo/v4"
)

// ProcessingHandlerImpl implements the ProcessingHandler interface
type ProcessingHandlerImpl struct {
	store storage.Store
}

// NewProcessingHandler creates a new processing handler
func NewProcessingHandler(store storage.Store) ProcessingHandler {
	return &ProcessingHandlerImpl{store: store}
}

// HandleProcessingPage renders the page a submission lands on
func (h *ProcessingHandlerImpl) HandleProcessingPage(c echo.Context) error {
	return renderProcessing(c, c.Param("filename"))
}

// HandleStatus reports the processing status of an uploaded file
func (h *ProcessingHandlerImpl) HandleStatus(c echo.Context) error {
	filename := c.Param("filename")
	if filename == "" {
		return NewBadRequestError("filename is required", nil)
	}
	if _, err := h.store.Get(filename); err != nil {
		return NewNotFoundError("upload", filename)
	}

	return c.JSON(http.StatusOK, models.ProcessingStatus{
		Status:   "processing",
		Progress: 50,
		Message:  "Processing document...",
	})
}

func renderProcessing(c echo.Context, filename string) error {
	return c.Render(http.StatusOK, web.ProcessingPage, map[string]string{
		"Filename":  filename,
		"StatusURL": "/api/status/" + url.PathEscape(filename),
	})
}
