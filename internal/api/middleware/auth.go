package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/easework/jobboard-api/internal/core/domain"
)

// PrincipalKey is the echo context key holding the *domain.Principal of an
// authenticated request.
const PrincipalKey = "principal"

// Auth validates an optional bearer JWT and injects the principal carried
// by its claims. Requests without an Authorization header proceed
// anonymously; a malformed or invalid token is rejected with 401.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			p, ok := principalFromClaims(claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity claims")
			}
			c.Set(PrincipalKey, p)

			return next(c)
		}
	}
}

func principalFromClaims(claims jwt.MapClaims) (*domain.Principal, bool) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, false
	}
	roleName, _ := claims["role"].(string)
	role, ok := domain.ParseRole(roleName)
	if !ok {
		return nil, false
	}
	super, _ := claims["is_superuser"].(bool)
	return &domain.Principal{ID: sub, Role: role, IsSuperuser: super}, true
}

// Principal returns the request's principal, or nil when anonymous.
func Principal(c echo.Context) *domain.Principal {
	p, _ := c.Get(PrincipalKey).(*domain.Principal)
	return p
}
