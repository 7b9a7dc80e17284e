package auth

import (
	"context"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_service/internal/models"
)

// RequireRoles rejects callers whose role claim is not in allowed. It must
// run after a guard.
func RequireRoles(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized,
					detail("Missing bearer credential", "Please provide an Authorization header"))
			}
			if !slices.Contains(allowed, claims.User.Role) {
				return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to perform this action")
			}
			return next(c)
		}
	}
}

// OwnerLookup reports whether userUID owns the resource with resourceUID.
type OwnerLookup func(ctx context.Context, resourceUID, userUID uuid.UUID) (bool, error)

// RequireOwnerOrAdmin lets a request through when the caller is an admin or
// owns the resource addressed by the param path parameter. The same policy
// serves every resource type, only the lookup differs.
func RequireOwnerOrAdmin(param string, owns OwnerLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized,
					detail("Missing bearer credential", "Please provide an Authorization header"))
			}
			if claims.User.Role == models.RoleAdmin {
				return next(c)
			}

			resourceUID, err := uuid.Parse(c.Param(param))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
			}
			userUID, err := uuid.Parse(claims.User.UserUID)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to perform this action")
			}

			ok, err := owns(c.Request().Context(), resourceUID, userUID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "cannot check resource ownership")
			}
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to perform this action")
			}
			return next(c)
		}
	}
}
