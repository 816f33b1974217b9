package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/session"
)

// ContextSessionKey is the gin context key storing the hydrated session.
const ContextSessionKey = "currentSession"

// Session hydrates the request's session from the signed cookie. It never
// blocks: routes without a session simply carry none, and the role guard
// decides what that means. The upstream token is stamped onto the request
// context so the gateway can attach it.
func Session(store *session.Store, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(cookieName)
		if err != nil || value == "" {
			c.Next()
			return
		}

		sess, err := store.Hydrate(c.Request.Context(), value)
		if err != nil {
			logger.Warn("session hydration failed", zap.Error(err))
			c.Next()
			return
		}
		if sess == nil {
			c.Next()
			return
		}

		c.Set(ContextSessionKey, sess)
		c.Request = c.Request.WithContext(gateway.WithToken(c.Request.Context(), sess.Token))
		c.Next()
	}
}

// CurrentSession returns the hydrated session, or nil when signed out.
func CurrentSession(c *gin.Context) *session.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}
