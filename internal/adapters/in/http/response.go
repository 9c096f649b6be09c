package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Details string `json:"details,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

func respondOrderNotFound(c echo.Context) error {
	return respond(c, http.StatusNotFound, "Order not found", nil)
}

// NewErrorHandler maps errors returned by handlers onto the envelope:
// input and transition errors become 400 with their reason, anything else
// is a 500 whose cause is only shown outside production.
func NewErrorHandler(logger *slog.Logger, exposeDetails bool) echo.HTTPErrorHandler {
	log := logger.With("component", "http_errors")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := classify(err)
		env := Envelope{Message: message}

		req := c.Request()
		if status >= http.StatusInternalServerError {
			log.ErrorContext(req.Context(), "Request failed",
				"method", req.Method, "path", req.URL.Path, "status", status, "error", err)
			if exposeDetails {
				env.Details = err.Error()
			}
		} else {
			log.WarnContext(req.Context(), "Request rejected",
				"method", req.Method, "path", req.URL.Path, "status", status, "reason", message)
		}

		var writeErr error
		if req.Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, env)
		}
		if writeErr != nil {
			log.ErrorContext(req.Context(), "Failed to write error response", "error", writeErr)
		}
	}
}

func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	var reqErr *RequestValidationError

	switch {
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, reqErr.Error()
	case errors.Is(err, errs.ErrInvalidTransition), errs.IsValidation(err):
		return http.StatusBadRequest, strings.ReplaceAll(err.Error(), "\n", ", ")
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}
