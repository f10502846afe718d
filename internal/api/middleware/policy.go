package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/easework/jobboard-api/internal/core/authz"
	"github.com/easework/jobboard-api/internal/core/domain"
)

// Policy runs the collection-level authorization check for rt before the
// handler. The action follows from the HTTP method and whether the route
// names an item. Object-level checks stay with the services, which load
// the resource.
func Policy(engine *authz.Engine, rt domain.ResourceType) echo.MiddlewareFunc {
	return policy(engine, rt, func(c echo.Context) authz.Action {
		return authz.ActionFor(c.Request().Method, len(c.ParamNames()) > 0)
	})
}

// PolicyAction is Policy with a fixed action, for nested routes such as
// /jobs/:id/applicants whose action does not follow from the method.
func PolicyAction(engine *authz.Engine, rt domain.ResourceType, action authz.Action) echo.MiddlewareFunc {
	return policy(engine, rt, func(echo.Context) authz.Action { return action })
}

func policy(engine *authz.Engine, rt domain.ResourceType, actionOf func(echo.Context) authz.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := engine.Permit(Principal(c), actionOf(c), rt); err != nil {
				return err
			}
			return next(c)
		}
	}
}
