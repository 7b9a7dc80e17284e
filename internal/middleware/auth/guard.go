package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_service/internal/blocklist"
	"github.com/Skotchmaster/book_service/internal/logging"
	"github.com/Skotchmaster/book_service/internal/tokens"
)

const claimsKey = "claims"

// TokenGuard gates requests on a bearer token. RequireAccess additionally
// consults the blocklist, which is what makes logout stick for tokens that
// are otherwise stateless and self-validating.
type TokenGuard struct {
	Codec     tokens.Codec
	Blocklist blocklist.Blocklist
}

func NewTokenGuard(codec tokens.Codec, bl blocklist.Blocklist) *TokenGuard {
	return &TokenGuard{Codec: codec, Blocklist: bl}
}

func (g *TokenGuard) RequireAccess(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := g.decodeBearer(c)
		if err != nil {
			return err
		}

		if claims.Refresh {
			return echo.NewHTTPError(http.StatusForbidden,
				detail("Received a refresh token but expected an access token", "Please provide an access token"))
		}

		ctx := c.Request().Context()
		revoked, err := g.Blocklist.Contains(ctx, claims.ID)
		if err != nil {
			// fail closed: an unreachable blocklist must not re-enable revoked tokens
			logging.FromContext(ctx).Error("blocklist_unavailable", "error", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable,
				detail("Cannot verify token", "Please try again later"))
		}
		if revoked {
			return echo.NewHTTPError(http.StatusUnauthorized,
				detail("This token has been revoked", "Please get a new token"))
		}

		c.Set(claimsKey, claims)
		return next(c)
	}
}

func (g *TokenGuard) RequireRefresh(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := g.decodeBearer(c)
		if err != nil {
			return err
		}

		if !claims.Refresh {
			return echo.NewHTTPError(http.StatusForbidden,
				detail("Received an access token but expected a refresh token", "Please provide a refresh token"))
		}

		c.Set(claimsKey, claims)
		return next(c)
	}
}

func (g *TokenGuard) decodeBearer(c echo.Context) (*tokens.Claims, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized,
			detail("Missing bearer credential", "Please provide an Authorization header"))
	}

	claims := g.Codec.Decode(c.Request().Context(), raw)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized,
			detail("Invalid or expired token", "Please get a new token"))
	}
	return claims, nil
}

// ClaimsFromContext returns the claims a guard stored for this request,
// or nil when no guard ran.
func ClaimsFromContext(c echo.Context) *tokens.Claims {
	claims, _ := c.Get(claimsKey).(*tokens.Claims)
	return claims
}

func detail(msg, resolution string) map[string]string {
	return map[string]string{"error": msg, "resolution": resolution}
}
