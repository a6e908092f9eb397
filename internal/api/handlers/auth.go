package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"letterforge/internal/store"
)

// The login flag is a persisted boolean, not an authentication system.
// It mirrors the signed-in toggle the client renders against.

// LoginStateHandler returns the persisted login flag.
func LoginStateHandler(login *store.LoginState) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]bool{
			"logged_in": login.IsLoggedIn(),
		})
	}
}

// LoginHandler sets the login flag.
func LoginHandler(login *store.LoginState) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		if err := login.Set(c.Request().Context(), true); err != nil {
			return internalError(c, requestID, "Failed to persist login state")
		}
		return c.JSON(http.StatusOK, map[string]bool{"logged_in": true})
	}
}

// LogoutHandler clears the login flag.
func LogoutHandler(login *store.LoginState) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestID(c)
		if err := login.Set(c.Request().Context(), false); err != nil {
			return internalError(c, requestID, "Failed to persist login state")
		}
		return c.JSON(http.StatusOK, map[string]bool{"logged_in": false})
	}
}
