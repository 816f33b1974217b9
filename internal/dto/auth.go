package dto

import "github.com/oakfield-primary/portal-api/internal/models"

// LoginRequest is the sign-in form payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed-in identity and where to land.
type LoginResponse struct {
	User     models.User `json:"user"`
	HomePath string      `json:"homePath"`
}

// RegisterRequest is the parent account sign-up form payload.
type RegisterRequest struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"required"`
	Address         string `json:"address" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse is always success-shaped to avoid account probing.
type ForgotPasswordResponse struct {
	Message string `json:"message"`
}

// VerifyResetResponse reveals only a masked address for the reset screen.
type VerifyResetResponse struct {
	MaskedEmail string `json:"maskedEmail"`
}

// ResetPasswordRequest confirms a reset with the new password.
type ResetPasswordRequest struct {
	OobCode         string `json:"oobCode" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}
