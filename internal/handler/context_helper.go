package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/oakfield-primary/portal-api/internal/middleware"
	"github.com/oakfield-primary/portal-api/internal/session"
)

func sessionFromContext(c *gin.Context) *session.Session {
	return middleware.CurrentSession(c)
}

// actorParentID resolves the parent record the session acts on behalf of.
// Older accounts carry the parent id separately from the auth uid.
func actorParentID(sess *session.Session) string {
	if sess.User.ParentID != "" {
		return sess.User.ParentID
	}
	return sess.User.UID
}
