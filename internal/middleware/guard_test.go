package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oakfield-primary/portal-api/internal/models"
	"github.com/oakfield-primary/portal-api/internal/session"
)

func performGuarded(role models.UserRole, sess *session.Session) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if sess != nil {
		c.Set(ContextSessionKey, sess)
	}

	RequireRole(role)(c)
	if !c.IsAborted() {
		c.Status(http.StatusOK)
	}
	return w
}

func TestRequireRoleSignedOutRedirectsToLogin(t *testing.T) {
	w := performGuarded(models.RoleParent, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireRoleWrongRoleRedirectsHome(t *testing.T) {
	sess := &session.Session{
		ID:    "sess-1",
		Token: "tok",
		User:  models.User{UID: "u1", Role: models.RoleParent},
	}
	w := performGuarded(models.RoleAdmin, sess)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/parent", w.Header().Get("Location"))
}

func TestRequireRoleMatchingRolePasses(t *testing.T) {
	sess := &session.Session{
		ID:    "sess-1",
		Token: "tok",
		User:  models.User{UID: "u1", Role: models.RoleAdmin},
	}
	w := performGuarded(models.RoleAdmin, sess)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}
