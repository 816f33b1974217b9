package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/pkg/config"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
	"github.com/oakfield-primary/portal-api/pkg/response"
)

type sessionEnder interface {
	Logout(ctx context.Context, sessionID string)
}

type sessionActionRecorder interface {
	RecordSessionAction(action string)
}

// Coordinator owns the one navigation decision handlers share: an
// unauthorized answer from the admissions API ends the portal session and
// sends the browser back to the login screen, no matter which screen the
// request came from. Everything else stays an error envelope.
type Coordinator struct {
	sessions sessionEnder
	cookie   config.SessionConfig
	metrics  sessionActionRecorder
	logger   *zap.Logger
}

// NewCoordinator constructs the shared failure coordinator.
func NewCoordinator(sessions sessionEnder, cookie config.SessionConfig, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{sessions: sessions, cookie: cookie, logger: logger}
}

// SetMetrics installs a session lifecycle counter.
func (co *Coordinator) SetMetrics(metrics sessionActionRecorder) {
	co.metrics = metrics
}

func (co *Coordinator) record(action string) {
	if co.metrics != nil {
		co.metrics.RecordSessionAction(action)
	}
}

func (co *Coordinator) fail(c *gin.Context, err error) {
	if appErrors.IsCode(err, appErrors.ErrUpstreamAuth.Code) {
		if sess := sessionFromContext(c); sess != nil && co.sessions != nil {
			co.sessions.Logout(c.Request.Context(), sess.ID)
		}
		co.clearSessionCookie(c)
		co.record("expired")
		co.logger.Info("upstream session expired, signing out")
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return
	}
	response.Error(c, err)
}

func (co *Coordinator) setSessionCookie(c *gin.Context, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(co.cookie.CookieName, value, int(co.cookie.TTL.Seconds()), "/", "", co.cookie.CookieSecure, true)
}

func (co *Coordinator) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(co.cookie.CookieName, "", -1, "/", "", co.cookie.CookieSecure, true)
}
