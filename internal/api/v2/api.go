// internal/api/v2/api.go
package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tphakala/bikeshare-go/internal/analytics"
	"github.com/tphakala/bikeshare-go/internal/conf"
	"github.com/tphakala/bikeshare-go/internal/dataset"
	"github.com/tphakala/bikeshare-go/internal/errors"
	"github.com/tphakala/bikeshare-go/internal/logging"
	"github.com/tphakala/bikeshare-go/internal/observability"
)

// Controller manages the API routes and handlers
type Controller struct {
	Echo     *echo.Echo
	Group    *echo.Group
	Store    *dataset.Store
	Engine   *analytics.Engine
	Settings *conf.Settings

	logger         *log.Logger
	apiLogger      *slog.Logger
	apiLevelVar    *slog.LevelVar
	apiLoggerClose func() error
	metrics        *observability.Metrics
	startTime      time.Time
}

// New creates a new API controller and registers its routes on the given
// echo instance under /api/v2.
func New(e *echo.Echo, store *dataset.Store, engine *analytics.Engine,
	settings *conf.Settings, logger *log.Logger, metrics *observability.Metrics) (*Controller, error) {

	if logger == nil {
		logger = log.Default()
	}

	c := &Controller{
		Echo:        e,
		Store:       store,
		Engine:      engine,
		Settings:    settings,
		logger:      logger,
		metrics:     metrics,
		startTime:   time.Now(),
		apiLevelVar: new(slog.LevelVar),
	}

	if settings.WebServer.Debug {
		c.apiLevelVar.Set(slog.LevelDebug)
	} else {
		c.apiLevelVar.Set(slog.LevelInfo)
	}

	// Structured logger for API operations, falls back to the global logger
	// when the file logger cannot be created
	logPath := settings.WebServer.Log.Path
	if logPath == "" {
		logPath = "logs/webserver.log"
	}
	apiLogger, closeFunc, err := logging.NewFileLogger(logPath, "api", c.apiLevelVar)
	if err != nil {
		logger.Printf("Failed to initialize API file logger: %v", err)
		c.apiLogger = logging.ForService("api")
	} else {
		c.apiLogger = apiLogger
		c.apiLoggerClose = closeFunc
	}

	e.Use(middleware.Recover())
	if metrics != nil {
		e.Use(c.MetricsMiddleware())
	}

	c.Group = e.Group("/api/v2")
	c.initDashboardRoutes()
	c.initViewRoutes()

	e.GET("/healthz", c.GetHealth)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	return c, nil
}

// Shutdown releases controller resources, closing the API log file.
func (c *Controller) Shutdown() {
	if c.apiLoggerClose != nil {
		if err := c.apiLoggerClose(); err != nil {
			c.logger.Printf("Failed to close API log file: %v", err)
		}
	}
}

// ErrorResponse is the JSON envelope returned for failed requests
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"`
}

// NewErrorResponse builds an error envelope with a fresh correlation ID
func NewErrorResponse(err error, message string, code int) *ErrorResponse {
	resp := &ErrorResponse{
		Message:       message,
		Code:          code,
		CorrelationID: newCorrelationID(),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// newCorrelationID generates a short random identifier for log correlation
func newCorrelationID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%08x", time.Now().UnixNano()&0xffffffff)
	}
	return hex.EncodeToString(buf)
}

// HandleError logs an error and writes the JSON error envelope. Validation
// errors from the analytics layer map to 400 regardless of the given code.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	var enhanced *errors.EnhancedError
	if errors.As(err, &enhanced) && enhanced.Category == errors.CategoryValidation {
		code = http.StatusBadRequest
	}

	errorResp := NewErrorResponse(err, message, code)
	ip := ctx.RealIP()

	c.logger.Printf("API Error [%s] from %s: %s: %v", errorResp.CorrelationID, ip, message, err)

	if c.apiLogger != nil {
		c.apiLogger.Error("API Error",
			"correlation_id", errorResp.CorrelationID,
			"message", message,
			"error", err.Error(),
			"code", code,
			"path", ctx.Request().URL.Path,
			"method", ctx.Request().Method,
			"ip", ip,
		)
	}

	return ctx.JSON(code, errorResp)
}

// Debug logs debug messages when debug mode is enabled
func (c *Controller) Debug(format string, v ...any) {
	if c.Settings.WebServer.Debug {
		msg := fmt.Sprintf(format, v...)
		c.logger.Printf("[DEBUG] %s", msg)
		if c.apiLogger != nil {
			c.apiLogger.Debug(msg)
		}
	}
}

// HealthResponse reports process health and dataset readiness
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DatasetLoaded bool   `json:"dataset_loaded"`
	DatasetRows   int    `json:"dataset_rows"`
}

// GetHealth handles GET /healthz
func (c *Controller) GetHealth(ctx echo.Context) error {
	resp := HealthResponse{
		Status:        "ok",
		Version:       c.Settings.Version,
		UptimeSeconds: int64(time.Since(c.startTime).Seconds()),
	}
	if meta, err := c.Store.Meta(); err == nil {
		resp.DatasetLoaded = true
		resp.DatasetRows = meta.Rows
	}
	return ctx.JSON(http.StatusOK, resp)
}
