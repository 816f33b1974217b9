package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oakfield-primary/portal-api/internal/dto"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
	"github.com/oakfield-primary/portal-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, string, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, string, error)
	Logout(ctx context.Context, sessionID string)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error)
	VerifyReset(ctx context.Context, oobCode string) (*dto.VerifyResetResponse, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

// AuthHandler wires the sign-in, sign-up and password reset screens.
type AuthHandler struct {
	service authService
	co      *Coordinator
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service authService, co *Coordinator) *AuthHandler {
	return &AuthHandler{service: service, co: co}
}

// Login godoc
// @Summary Sign in
// @Description Authenticate against the admissions API and open a portal session
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, cookie, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.co.setSessionCookie(c, cookie)
	h.co.record("login")
	response.JSON(c, http.StatusOK, res)
}

// Register godoc
// @Summary Create a parent account
// @Description Register with the admissions API and sign straight in
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	res, cookie, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.co.setSessionCookie(c, cookie)
	h.co.record("login")
	response.JSON(c, http.StatusCreated, res)
}

// Logout godoc
// @Summary Sign out
// @Description Destroy the portal session and expire the cookie
// @Tags Auth
// @Produce json
// @Success 204 {object} response.Envelope
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := sessionFromContext(c); sess != nil {
		h.service.Logout(c.Request.Context(), sess.ID)
	}
	h.co.clearSessionCookie(c)
	h.co.record("logout")
	response.NoContent(c)
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Description Always answers success-shaped unless the payload is invalid
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.ForgotPasswordRequest true "Email"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid forgot-password payload"))
		return
	}

	res, err := h.service.ForgotPassword(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// VerifyReset godoc
// @Summary Verify a password reset code
// @Description Resolves the oobCode to a masked email for the reset screen
// @Tags Auth
// @Produce json
// @Param oobCode query string true "Reset code from the emailed link"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reset-password [get]
func (h *AuthHandler) VerifyReset(c *gin.Context) {
	oobCode := strings.TrimSpace(c.Query("oobCode"))
	if oobCode == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "oobCode is required"))
		return
	}

	res, err := h.service.VerifyReset(c.Request.Context(), oobCode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// ResetPassword godoc
// @Summary Confirm a password reset
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.ResetPasswordRequest true "Reset payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reset payload"))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "password updated, sign in with your new password"})
}

// RedirectLogin sends the browser to the login screen. Bound to the root
// path and to every route nothing else claims.
func (h *AuthHandler) RedirectLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/login")
}
