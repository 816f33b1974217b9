package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oakfield-primary/portal-api/internal/middleware"
	"github.com/oakfield-primary/portal-api/internal/models"
	"github.com/oakfield-primary/portal-api/internal/session"
	"github.com/oakfield-primary/portal-api/pkg/config"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type fakeSessionEnder struct {
	endedIDs []string
}

func (f *fakeSessionEnder) Logout(_ context.Context, sessionID string) {
	f.endedIDs = append(f.endedIDs, sessionID)
}

func testCookieConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName: "portal_session",
		Secret:     "test-secret",
		TTL:        time.Hour,
	}
}

func testContextWithSession(rec *httptest.ResponseRecorder, role models.UserRole) *gin.Context {
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/parent", nil)
	c.Set(middleware.ContextSessionKey, &session.Session{
		ID:    "sess-1",
		Token: "upstream-token",
		User:  models.User{UID: "user-1", ParentID: "parent-1", Role: role},
	})
	return c
}

func TestFailUpstreamAuthEndsSessionAndRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ender := &fakeSessionEnder{}
	co := NewCoordinator(ender, testCookieConfig(), nil)

	rec := httptest.NewRecorder()
	c := testContextWithSession(rec, models.RoleParent)

	co.fail(c, appErrors.Clone(appErrors.ErrUpstreamAuth, "token rejected"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, []string{"sess-1"}, ender.endedIDs)

	cookies := rec.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, "portal_session", cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	}
}

func TestFailUpstreamAuthWithoutSessionStillRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ender := &fakeSessionEnder{}
	co := NewCoordinator(ender, testCookieConfig(), nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/parent", nil)

	co.fail(c, appErrors.ErrUpstreamAuth)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Empty(t, ender.endedIDs)
}

func TestFailOtherErrorsWriteEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	co := NewCoordinator(&fakeSessionEnder{}, testCookieConfig(), nil)

	rec := httptest.NewRecorder()
	c := testContextWithSession(rec, models.RoleParent)

	co.fail(c, appErrors.Clone(appErrors.ErrValidation, "reason is required"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, rec.Body.String(), "reason is required")
}
