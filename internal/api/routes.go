// routes.go - Route registration helpers
// This file assembles the conversion server emulator
package api

import (
	"log/slog"

	"github.com/doctoppt/client/internal/storage"
	"github.com/doctoppt/client/internal/web"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ProcessingPath is where accepted uploads are followed up.
const ProcessingPath = "/processing"

// DefaultBodyLimit matches the 16 MiB request ceiling of the real server.
const DefaultBodyLimit = "16M"

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store              storage.Store
	Mode               ReplyMode
	Version            string
	DeepseekConfigured bool
	BodyLimit          string
	Logger             *slog.Logger
}

// Handlers holds all handler instances
type Handlers struct {
	Health     HealthHandler
	Upload     UploadHandler
	Processing ProcessingHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(deps.Version, deps.DeepseekConfigured),
		Upload:     NewUploadHandler(deps.Store, deps.Mode, deps.Logger),
		Processing: NewProcessingHandler(deps.Store),
	}
}

// RegisterRoutes registers all routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/health", handlers.Health.HandleHealth)

	e.GET("/upload", handlers.Upload.HandleUploadPage)
	e.POST("/upload", handlers.Upload.HandleUpload)
	e.GET("/api/uploads", handlers.Upload.HandleRecentUploads)

	e.GET(ProcessingPath+"/:filename", handlers.Processing.HandleProcessingPage)
	e.GET("/api/status/:filename", handlers.Processing.HandleStatus)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo, deps *Dependencies) {
	e.HTTPErrorHandler = NewErrorHandler(deps.Logger, deps.BodyLimit)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			deps.Logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	e.Use(middleware.BodyLimit(deps.BodyLimit))
}

// NewServer builds a ready to serve emulator. Zero fields of deps get defaults.
func NewServer(deps Dependencies) *echo.Echo {
	if deps.Mode == "" {
		deps.Mode = ReplyJSON
	}
	if deps.BodyLimit == "" {
		deps.BodyLimit = DefaultBodyLimit
	}
	if deps.Version == "" {
		deps.Version = "0.1.0"
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	deps.Logger = deps.Logger.With("component", "emulator")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = web.MustRenderer()

	SetupMiddleware(e, &deps)
	RegisterRoutes(e, NewHandlers(&deps))
	return e
}
