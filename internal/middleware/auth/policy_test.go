package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/book_service/internal/models"
	"github.com/Skotchmaster/book_service/internal/tokens"
)

func contextWithClaims(role, userUID, param, value string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if param != "" {
		c.SetParamNames(param)
		c.SetParamValues(value)
	}
	c.Set(claimsKey, &tokens.Claims{
		User: tokens.UserClaims{Email: "reader@example.com", UserUID: userUID, Role: role},
	})
	return c
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		role    string
		allowed []string
		status  int
	}{
		{name: "admin allowed", role: models.RoleAdmin, allowed: []string{models.RoleAdmin}, status: http.StatusOK},
		{name: "user allowed among several", role: models.RoleUser, allowed: []string{models.RoleAdmin, models.RoleUser}, status: http.StatusOK},
		{name: "user forbidden", role: models.RoleUser, allowed: []string{models.RoleAdmin}, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := contextWithClaims(tt.role, uuid.NewString(), "", "")
			handler := RequireRoles(tt.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)
			if tt.status == http.StatusOK {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tt.status, httpStatus(t, err))
		})
	}
}

func TestRequireRoles_NoClaims(t *testing.T) {
	t.Parallel()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	handler := RequireRoles(models.RoleAdmin)(func(c echo.Context) error { return nil })
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, handler(c)))
}

func TestRequireOwnerOrAdmin_OwnerPasses(t *testing.T) {
	t.Parallel()

	userUID := uuid.New()
	resourceUID := uuid.New()

	mw := RequireOwnerOrAdmin("id", func(_ context.Context, r, u uuid.UUID) (bool, error) {
		return r == resourceUID && u == userUID, nil
	})

	c := contextWithClaims(models.RoleUser, userUID.String(), "id", resourceUID.String())
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, handler(c))
}

func TestRequireOwnerOrAdmin_NonOwnerForbidden(t *testing.T) {
	t.Parallel()

	mw := RequireOwnerOrAdmin("id", func(_ context.Context, _, _ uuid.UUID) (bool, error) {
		return false, nil
	})

	c := contextWithClaims(models.RoleUser, uuid.NewString(), "id", uuid.NewString())
	handler := mw(func(c echo.Context) error { return nil })
	assert.Equal(t, http.StatusForbidden, httpStatus(t, handler(c)))
}

func TestRequireOwnerOrAdmin_AdminBypassesLookup(t *testing.T) {
	t.Parallel()

	mw := RequireOwnerOrAdmin("id", func(_ context.Context, _, _ uuid.UUID) (bool, error) {
		return false, errors.New("lookup must not run for admins")
	})

	c := contextWithClaims(models.RoleAdmin, uuid.NewString(), "id", uuid.NewString())
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, handler(c))
}

func TestRequireOwnerOrAdmin_BadParam(t *testing.T) {
	t.Parallel()

	mw := RequireOwnerOrAdmin("id", func(_ context.Context, _, _ uuid.UUID) (bool, error) {
		return true, nil
	})

	c := contextWithClaims(models.RoleUser, uuid.NewString(), "id", "42")
	handler := mw(func(c echo.Context) error { return nil })
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, handler(c)))
}

func TestRequireOwnerOrAdmin_LookupError(t *testing.T) {
	t.Parallel()

	mw := RequireOwnerOrAdmin("id", func(_ context.Context, _, _ uuid.UUID) (bool, error) {
		return false, errors.New("db down")
	})

	c := contextWithClaims(models.RoleUser, uuid.NewString(), "id", uuid.NewString())
	handler := mw(func(c echo.Context) error { return nil })
	assert.Equal(t, http.StatusInternalServerError, httpStatus(t, handler(c)))
}
