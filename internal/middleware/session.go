package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/advenue/foodadmin/internal/session"
)

// SessionAuth guards the admin surface. Requests without a live
// session are redirected to the login page; authenticated requests get
// the user id stashed under "session_user_id".
func SessionAuth(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := sessions.UserID(c)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set("session_user_id", uid)
			return next(c)
		}
	}
}
