// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// Helpers over the identity values the route middleware extracts from
// verified claims and stores on the request context.

func UserIDFromContext(c echo.Context) (int64, error) {
	id, ok := c.Get("user_id").(int64)
	if !ok || id <= 0 {
		return 0, errors.New("no user id in context")
	}
	return id, nil
}

func RoleFromContext(c echo.Context) (string, error) {
	role, ok := c.Get("role").(string)
	if !ok || role == "" {
		return "", errors.New("no role in context")
	}
	return role, nil
}

func IsAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == "admin"
}
