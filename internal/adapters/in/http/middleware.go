package http

import (
	"context"
	"log/slog"
	"strings"

	"depot/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HeaderDepotUser carries the authenticated depot user set by the gateway.
const HeaderDepotUser = "X-Depot-User"

const callerKey = "depot.caller"

// CallerMiddleware resolves the caller of each request. Requests without
// HeaderDepotUser come from anonymous external callers.
func CallerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			caller := kernel.ExternalCaller("")
			if user := strings.TrimSpace(ctx.Request().Header.Get(HeaderDepotUser)); user != "" {
				caller = kernel.InternalCaller(user)
			}
			ctx.Set(callerKey, caller)
			return next(ctx)
		}
	}
}

func callerOf(ctx echo.Context) kernel.Caller {
	if caller, ok := ctx.Get(callerKey).(kernel.Caller); ok {
		return caller
	}
	return kernel.ExternalCaller("")
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "Request handled",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("caller", callerOf(ctx).Name()),
			)
			return nil
		},
	})
}
