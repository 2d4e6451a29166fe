package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// BaseURL prefixes every API route.
const BaseURL = "/api/v1"

// NewRouter builds the echo instance serving si, the health check and the
// swagger UI.
func NewRouter(si ServerInterface, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(BaseURL, CallerMiddleware())
	RegisterHandlers(api, si)

	return e
}
