package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakfield-primary/portal-api/internal/dto"
	"github.com/oakfield-primary/portal-api/internal/gateway"
	"github.com/oakfield-primary/portal-api/internal/idp"
	"github.com/oakfield-primary/portal-api/internal/models"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
	"github.com/oakfield-primary/portal-api/pkg/mail"
)

type fakeAuthGateway struct {
	loginResult *gateway.LoginResult
	loginErr    error
	registered  *gateway.RegisterPayload
	registerErr error
}

func (f *fakeAuthGateway) Login(context.Context, gateway.Credentials) (*gateway.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAuthGateway) Register(_ context.Context, payload gateway.RegisterPayload) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered = &payload
	return &models.User{UID: "new", Email: payload.Email}, nil
}

type fakeSessionStore struct {
	loggedInToken string
	loggedOutID   string
	err           error
}

func (f *fakeSessionStore) Login(_ context.Context, token string, _ models.User) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	f.loggedInToken = token
	return "sess-1", "signed-cookie", nil
}

func (f *fakeSessionStore) Logout(_ context.Context, id string) {
	f.loggedOutID = id
}

type fakeIdentity struct {
	link       string
	linkErr    error
	email      string
	verifyErr  error
	confirmErr error
	confirmed  bool
}

func (f *fakeIdentity) GenerateResetLink(context.Context, string) (string, error) {
	return f.link, f.linkErr
}

func (f *fakeIdentity) VerifyResetCode(context.Context, string) (string, error) {
	return f.email, f.verifyErr
}

func (f *fakeIdentity) ConfirmReset(context.Context, string, string) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmed = true
	return nil
}

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newAuthService(gw *fakeAuthGateway, sessions *fakeSessionStore, identity *fakeIdentity, mailer *fakeMailer) *AuthService {
	return NewAuthService(gw, sessions, identity, mailer, nil, nil)
}

func TestLoginOpensSession(t *testing.T) {
	gw := &fakeAuthGateway{loginResult: &gateway.LoginResult{
		Token: "upstream-token",
		User:  models.User{UID: "u1", Role: models.RoleParent, ParentID: "p1"},
	}}
	sessions := &fakeSessionStore{}
	svc := newAuthService(gw, sessions, &fakeIdentity{}, &fakeMailer{})

	resp, cookie, err := svc.Login(context.Background(), dto.LoginRequest{Email: "p@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "signed-cookie", cookie)
	assert.Equal(t, "/parent", resp.HomePath)
	assert.Equal(t, "upstream-token", sessions.loggedInToken)
}

func TestLoginUpstreamFailureOpensNoSession(t *testing.T) {
	gw := &fakeAuthGateway{loginErr: appErrors.ErrInvalidCredentials}
	sessions := &fakeSessionStore{}
	svc := newAuthService(gw, sessions, &fakeIdentity{}, &fakeMailer{})

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{Email: "p@example.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, "INVALID_CREDENTIALS"))
	assert.Empty(t, sessions.loggedInToken)
}

func TestLoginRequiresFields(t *testing.T) {
	svc := newAuthService(&fakeAuthGateway{}, &fakeSessionStore{}, &fakeIdentity{}, &fakeMailer{})

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{Email: "p@example.com"})
	assert.True(t, appErrors.IsCode(err, "VALIDATION_ERROR"))
}

func validRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		FullName:        "Pat Example",
		Email:           "p@example.com",
		PhoneNumber:     "555-0100",
		Address:         "1 School Lane",
		Password:        "Str0ng#pass",
		ConfirmPassword: "Str0ng#pass",
	}
}

func TestRegisterPasswordRules(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "Str0ng#pass", true},
		{"too short", "S0#a", false},
		{"no upper", "str0ng#pass", false},
		{"no lower", "STR0NG#PASS", false},
		{"no digit", "Strong#pass", false},
		{"no special", "Str0ngpass1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeAuthGateway{loginResult: &gateway.LoginResult{
				Token: "t", User: models.User{UID: "u1", Role: models.RoleParent},
			}}
			svc := newAuthService(gw, &fakeSessionStore{}, &fakeIdentity{}, &fakeMailer{})

			req := validRegistration()
			req.Password = tt.password
			req.ConfirmPassword = tt.password
			_, _, err := svc.Register(context.Background(), req)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, appErrors.IsCode(err, "VALIDATION_ERROR"))
			}
		})
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc := newAuthService(&fakeAuthGateway{}, &fakeSessionStore{}, &fakeIdentity{}, &fakeMailer{})

	req := validRegistration()
	req.ConfirmPassword = "Different#1"
	_, _, err := svc.Register(context.Background(), req)
	assert.True(t, appErrors.IsCode(err, "VALIDATION_ERROR"))
}

func TestRegisterStampsParentRole(t *testing.T) {
	gw := &fakeAuthGateway{loginResult: &gateway.LoginResult{
		Token: "t", User: models.User{UID: "u1", Role: models.RoleParent},
	}}
	svc := newAuthService(gw, &fakeSessionStore{}, &fakeIdentity{}, &fakeMailer{})

	_, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.NotNil(t, gw.registered)
	assert.Equal(t, "PARENT", gw.registered.Role)
}

func TestForgotPasswordMailsLink(t *testing.T) {
	identity := &fakeIdentity{link: "https://reset.example.com/x"}
	mailer := &fakeMailer{}
	svc := newAuthService(&fakeAuthGateway{}, &fakeSessionStore{}, identity, mailer)

	resp, err := svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "p@example.com"})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].TextBody, "https://reset.example.com/x")
	assert.NotEmpty(t, resp.Message)
}

func TestForgotPasswordHidesUnknownAccounts(t *testing.T) {
	identity := &fakeIdentity{linkErr: idp.ErrEmailNotFound}
	mailer := &fakeMailer{}
	svc := newAuthService(&fakeAuthGateway{}, &fakeSessionStore{}, identity, mailer)

	resp, err := svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)
	assert.Empty(t, mailer.sent)
}

func TestForgotPasswordSurfacesRateLimit(t *testing.T) {
	identity := &fakeIdentity{linkErr: idp.ErrTooManyAttempts}
	svc := newAuthService(&fakeAuthGateway{}, &fakeSessionStore{}, identity, &fakeMailer{})

	_, err := svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{Email: "p@example.com"})
	assert.True(t, appErrors.IsCode(err, "TOO_MANY_ATTEMPTS"))
}

func TestVerifyResetMasksEmail(t *testing.T) {
	identity := &fakeIdentity{email: "johndoe@example.com"}
	svc := newAuthService(&fakeAuthGateway{}, &fakeSessionStore{}, identity, &fakeMailer{})

	resp, err := svc.VerifyReset(context.Background(), "oob-1")
	require.NoError(t, err)
	assert.Equal(t, "jo*****@example.com", resp.MaskedEmail)
}

func TestVerifyResetMapsProviderErrors(t *testing.T) {
	identity := &fakeIdentity{verifyErr: idp.ErrResetCodeExpired}
	svc := newAuthService(&fakeAuthGateway{}, &fakeSessionStore{}, identity, &fakeMailer{})

	_, err := svc.VerifyReset(context.Background(), "oob-1")
	assert.True(t, appErrors.IsCode(err, "RESET_CODE_EXPIRED"))
}

func TestResetPasswordRules(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "abc123", true},
		{"too short", "a1", false},
		{"no digit", "abcdef", false},
		{"no letter", "123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := &fakeIdentity{}
			svc := newAuthService(&fakeAuthGateway{}, &fakeSessionStore{}, identity, &fakeMailer{})

			err := svc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
				OobCode:         "oob-1",
				Password:        tt.password,
				ConfirmPassword: tt.password,
			})
			if tt.ok {
				assert.NoError(t, err)
				assert.True(t, identity.confirmed)
			} else {
				assert.True(t, appErrors.IsCode(err, "VALIDATION_ERROR"))
				assert.False(t, identity.confirmed)
			}
		})
	}
}

func TestLogoutClearsSession(t *testing.T) {
	sessions := &fakeSessionStore{}
	svc := newAuthService(&fakeAuthGateway{}, sessions, &fakeIdentity{}, &fakeMailer{})

	svc.Logout(context.Background(), "sess-9")
	assert.Equal(t, "sess-9", sessions.loggedOutID)
}
