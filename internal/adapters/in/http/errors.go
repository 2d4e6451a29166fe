package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"depot/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every rejected request.
type Error struct {
	Code       string                `json:"code"`
	Message    string                `json:"message"`
	Violations []errs.FieldViolation `json:"violations,omitempty"`
}

func statusOf(code string) int {
	switch code {
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeValidation:
		return http.StatusBadRequest
	case errs.CodeConflict:
		return http.StatusConflict
	case errs.CodeInvariant:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// rejection maps a use case error to its status and body. Internal failures
// never expose their message.
func rejection(err error) (int, Error) {
	code := errs.CodeOf(err)
	if code == errs.CodeInternal {
		return http.StatusInternalServerError, Error{Code: code, Message: "internal error"}
	}

	body := Error{Code: code, Message: err.Error()}
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		body.Violations = ve.Violations
	}
	return statusOf(code), body
}

func codeOfStatus(status int) string {
	switch {
	case status == http.StatusNotFound:
		return errs.CodeNotFound
	case status == http.StatusConflict:
		return errs.CodeConflict
	case status < http.StatusInternalServerError:
		return errs.CodeValidation
	default:
		return errs.CodeInternal
	}
}

// ErrorHandler renders errors that escape handlers: binding failures, unknown
// routes and use case errors alike.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var (
			status int
			body   Error
		)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			body = Error{Code: codeOfStatus(he.Code), Message: fmt.Sprint(he.Message)}
		} else {
			status, body = rejection(err)
		}

		if status >= http.StatusInternalServerError {
			logger.Error("Request failed",
				"method", ctx.Request().Method,
				"path", ctx.Path(),
				"error", err)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(status)
		} else {
			writeErr = ctx.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("Failed to write error response", "error", writeErr)
		}
	}
}
