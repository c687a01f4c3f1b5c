package jwtx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newCtx() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestUserIDFromContext(t *testing.T) {
	c := newCtx()
	c.Set("user_id", int64(42))

	id, err := UserIDFromContext(c)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestUserIDFromContext_Missing(t *testing.T) {
	_, err := UserIDFromContext(newCtx())
	require.Error(t, err)
}

func TestRoleFromContext(t *testing.T) {
	c := newCtx()
	c.Set("role", "user")

	role, err := RoleFromContext(c)
	require.NoError(t, err)
	require.Equal(t, "user", role)
}

func TestIsAdmin(t *testing.T) {
	c := newCtx()
	require.False(t, IsAdmin(c))

	c.Set("role", "user")
	require.False(t, IsAdmin(c))

	c.Set("role", "admin")
	require.True(t, IsAdmin(c))
}
