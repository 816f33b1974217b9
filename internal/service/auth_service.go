package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/idp"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
	"github.com/oakfield-primary/portal-api/pkg/mail"
)

type authGateway interface {
	Login(ctx context.Context, credentials gateway.Credentials) (*gateway.LoginResult, error)
	Register(ctx context.Context, payload gateway.RegisterPayload) (*models.User, error)
}

type sessionStore interface {
	Login(ctx context.Context, token string, user models.User) (string, string, error)
	Logout(ctx context.Context, id string)
}

// AuthService drives sign-in, sign-up and the password recovery flow.
type AuthService struct {
	gateway   authGateway
	sessions  sessionStore
	identity  idp.Provider
	mailer    mail.Mailer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(gw authGateway, sessions sessionStore, identity idp.Provider, mailer mail.Mailer, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		gateway:   gw,
		sessions:  sessions,
		identity:  identity,
		mailer:    mailer,
		validator: validate,
		logger:    logger,
	}
}

// Login signs the credentials in upstream and opens a session. The
// returned cookie value is the signed session token for the browser.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "email and password are required")
	}

	result, err := s.gateway.Login(ctx, gateway.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, "", err
	}

	_, cookie, err := s.sessions.Login(ctx, result.Token, result.User)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open session")
	}

	s.logger.Info("user signed in", zap.String("uid", result.User.UID), zap.String("role", string(result.User.Role)))
	return &dto.LoginResponse{User: result.User, HomePath: result.User.Role.HomePath()}, cookie, nil
}

// Register creates a parent account after reproducing the sign-up form's
// validation, then signs the new account in.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "all fields are required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "passwords do not match")
	}
	if msg := registrationPasswordProblem(req.Password); msg != "" {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, msg)
	}

	if _, err := s.gateway.Register(ctx, gateway.RegisterPayload{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Role:        string(models.RoleParent),
	}); err != nil {
		return nil, "", err
	}

	return s.Login(ctx, dto.LoginRequest{Email: req.Email, Password: req.Password})
}

// Logout destroys the session. Always succeeds from the browser's view.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	s.sessions.Logout(ctx, sessionID)
}

// ForgotPassword generates a reset link and mails it. The response is
// success-shaped even for unknown addresses so the form cannot be used
// to probe for accounts; only rate limiting is surfaced.
func (s *AuthService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "a valid email address is required")
	}

	response := &dto.ForgotPasswordResponse{
		Message: "If an account exists for that address, a reset link is on its way.",
	}

	link, err := s.identity.GenerateResetLink(ctx, req.Email)
	if err != nil {
		if appErrors.IsCode(err, idp.ErrTooManyAttempts.Code) {
			return nil, err
		}
		if appErrors.IsCode(err, idp.ErrEmailNotFound.Code) || appErrors.IsCode(err, idp.ErrInvalidEmail.Code) {
			s.logger.Info("password reset requested for unknown address", zap.String("email", req.Email))
			return response, nil
		}
		return nil, err
	}

	message := mail.Message{
		ToEmail:  req.Email,
		Subject:  "Reset your portal password",
		TextBody: "Use this link to choose a new password: " + link,
	}
	if err := s.mailer.Send(ctx, message); err != nil {
		s.logger.Error("reset mail delivery failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to send the reset email")
	}

	return response, nil
}

// VerifyReset checks the emailed code and returns a masked address for
// the reset screen's confirmation text.
func (s *AuthService) VerifyReset(ctx context.Context, oobCode string) (*dto.VerifyResetResponse, error) {
	if strings.TrimSpace(oobCode) == "" {
		return nil, idp.ErrResetCodeInvalid
	}
	email, err := s.identity.VerifyResetCode(ctx, oobCode)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyResetResponse{MaskedEmail: maskEmail(email)}, nil
}

// ResetPassword consumes the code and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "all fields are required")
	}
	if req.Password != req.ConfirmPassword {
		return appErrors.Clone(appErrors.ErrValidation, "passwords do not match")
	}
	if msg := resetPasswordProblem(req.Password); msg != "" {
		return appErrors.Clone(appErrors.ErrValidation, msg)
	}
	return s.identity.ConfirmReset(ctx, req.OobCode, req.Password)
}

// registrationPasswordProblem enforces the sign-up form's rules: at
// least 8 characters with an upper-case letter, a lower-case letter, a
// digit and one of @$!%*?&#.
func registrationPasswordProblem(password string) string {
	if len(password) < 8 {
		return "password must be at least 8 characters"
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("@$!%*?&#", r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return "password must contain upper and lower case letters, a digit and one of @$!%*?&#"
	}
	return ""
}

// resetPasswordProblem enforces the looser reset-screen rules: at least
// 6 characters with a letter and a digit.
func resetPasswordProblem(password string) string {
	if len(password) < 6 {
		return "password must be at least 6 characters"
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return "password must contain at least one letter and one digit"
	}
	return ""
}

// maskEmail hides most of the local part: "johndoe@x.com" -> "jo*****@x.com".
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return email
	}
	local, domain := email[:at], email[at:]
	visible := 2
	if len(local) <= visible {
		visible = 1
	}
	return local[:visible] + strings.Repeat("*", len(local)-visible) + domain
}
