package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakfield-primary/portal-api/internal/models"
)

// RequireRole guards a route group. A signed-out request is sent to the
// login screen; a signed-in request with the wrong role is sent to its
// own home, never to an error page.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		if sess.User.Role != role {
			c.Redirect(http.StatusSeeOther, sess.User.Role.HomePath())
			c.Abort()
			return
		}

		c.Next()
	}
}
