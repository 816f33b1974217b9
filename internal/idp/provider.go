package idp

import (
	"context"
	"net/http"

	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

// Provider is the identity side of password recovery. Sign-in itself goes
// through the admissions service; only the reset flow talks to the
// identity provider directly.
type Provider interface {
	// GenerateResetLink creates a password-reset link for the address.
	GenerateResetLink(ctx context.Context, email string) (string, error)
	// VerifyResetCode checks an out-of-band reset code and returns the
	// address it was issued for.
	VerifyResetCode(ctx context.Context, oobCode string) (string, error)
	// ConfirmReset consumes the code and sets the new password.
	ConfirmReset(ctx context.Context, oobCode, newPassword string) error
}

// Reset-flow errors surfaced to the browser with stable codes.
var (
	ErrResetCodeExpired = appErrors.New("RESET_CODE_EXPIRED", http.StatusBadRequest, "This reset link has expired. Please request a new one.")
	ErrResetCodeInvalid = appErrors.New("RESET_CODE_INVALID", http.StatusBadRequest, "This reset link is invalid. Please request a new one.")
	ErrEmailNotFound    = appErrors.New("EMAIL_NOT_FOUND", http.StatusNotFound, "No account exists for that email address.")
	ErrTooManyAttempts  = appErrors.New("TOO_MANY_ATTEMPTS", http.StatusTooManyRequests, "Too many attempts. Please try again later.")
	ErrWeakPassword     = appErrors.New("WEAK_PASSWORD", http.StatusBadRequest, "The new password is too weak.")
	ErrInvalidEmail     = appErrors.New("INVALID_EMAIL", http.StatusBadRequest, "That email address is not valid.")
)

// mapIdentityError converts provider error codes to the portal's taxonomy.
func mapIdentityError(code string) *appErrors.Error {
	switch code {
	case "EXPIRED_OOB_CODE":
		return ErrResetCodeExpired
	case "INVALID_OOB_CODE":
		return ErrResetCodeInvalid
	case "EMAIL_NOT_FOUND":
		return ErrEmailNotFound
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return ErrTooManyAttempts
	case "WEAK_PASSWORD":
		return ErrWeakPassword
	case "INVALID_EMAIL":
		return ErrInvalidEmail
	default:
		return nil
	}
}
