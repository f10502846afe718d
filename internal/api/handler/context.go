package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/easework/jobboard-api/internal/api/middleware"
	"github.com/easework/jobboard-api/internal/core/domain"
	"github.com/easework/jobboard-api/internal/core/ports"
)

// principalFrom returns the caller injected by the Auth middleware, or nil
// for anonymous requests. Authorization is decided by the services.
func principalFrom(c echo.Context) *domain.Principal {
	return middleware.Principal(c)
}

// listQuery rebuilds the absolute request URL so pagination links carry the
// scheme and host the client used.
func listQuery(c echo.Context) (ports.ListQuery, error) {
	req := c.Request()
	q, err := ports.NewListQuery(c.Scheme() + "://" + req.Host + req.RequestURI)
	if err != nil {
		return ports.ListQuery{}, echo.NewHTTPError(http.StatusBadRequest, "invalid query string")
	}
	return q, nil
}

// isPartial reports whether the request is a PATCH.
func isPartial(c echo.Context) bool {
	return c.Request().Method == http.MethodPatch
}

// bind decodes and validates the request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

func rawJSON(c echo.Context, body []byte) error {
	return c.JSONBlob(http.StatusOK, body)
}
