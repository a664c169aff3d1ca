package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"logistics/internal/adapters/in/http/api"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho assembles the HTTP stack: recovery, request ids, structured
// request logging, OpenAPI validation, the API routes, /health and the
// swagger UI.
func NewEcho(ctx context.Context, server api.ServerInterface, logger *slog.Logger, level log.Lvl) (*echo.Echo, error) {
	doc, err := LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err := RegisterDocs(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(level)
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	api.RegisterHandlers(e, server)

	return e, nil
}

// ParseLevel maps a LOG_LEVEL value onto echo's logger levels.
func ParseLevel(s string) (log.Lvl, error) {
	switch s {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	default:
		return log.INFO, fmt.Errorf("unknown log level %q", s)
	}
}
