// interfaces.go - Handler interface definitions for the conversion server emulator
package api

import "github.com/labstack/echo/v4"

// UploadHandler handles document submission
type UploadHandler interface {
	HandleUploadPage(c echo.Context) error
	HandleUpload(c echo.Context) error
	HandleRecentUploads(c echo.Context) error
}

// ProcessingHandler serves the pages and status a submission leads to
type ProcessingHandler interface {
	HandleProcessingPage(c echo.Context) error
	HandleStatus(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
