package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/pkg/metrics"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures keyed by the offending field.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		switch code {
		case http.StatusUnauthorized:
			metrics.AuthzDenialsTotal.WithLabelValues("unauthenticated").Inc()
		case http.StatusForbidden:
			metrics.AuthzDenialsTotal.WithLabelValues("forbidden").Inc()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func message(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, map[string]string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, message(fmt.Sprintf("%v", he.Message))
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		field := ve.Field
		if field == "" {
			field = "error"
		}
		return http.StatusBadRequest, map[string]string{field: ve.Message}
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateApplication):
		return http.StatusBadRequest, message("You have already applied for this job.")
	case errors.Is(err, domain.ErrStatusOnlyUpdate):
		return http.StatusBadRequest, message("You can only update the 'status' field of an application.")
	case errors.Is(err, domain.ErrIndustryExists):
		return http.StatusBadRequest, map[string]string{"name": "industry with this name already exists."}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, map[string]string{"email": "user with this email already exists."}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, message("Invalid email or password.")
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, message("Authentication credentials were not provided.")
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, message("You do not have permission to perform this action.")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, message("Not found.")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, message("internal server error")
}
