package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal identifies the authenticated caller for the duration of a
// request: the user the session token resolved to and the role it was
// issued for.
type Principal struct {
	UserID string
	Role   string
}

// SessionResolver resolves an opaque bearer token to the principal that
// created it. Any error means the token does not authenticate anyone.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (Principal, error)
}

// TokenFromRequest extracts the session token from the Authorization header
// ("Bearer <token>") or, failing that, the token query parameter.
func TokenFromRequest(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return c.QueryParam("token")
}

// RequireRole returns middleware that admits only callers holding a valid
// session issued for the given role. A missing, unknown, or wrong-role token
// yields 401 Unauthorized.
func RequireRole(resolver SessionResolver, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			p, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil || p.Role != role {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			ctx := context.WithValue(c.Request().Context(), principalKey, p)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// PrincipalFromContext returns the principal set by RequireRole.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
