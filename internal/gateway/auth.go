package gateway

import (
	"context"
	"net/http"

	"github.com/oakfield-primary/portal-api/internal/models"
)

// Credentials is the upstream login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the upstream login response: the identity plus the bearer
// token the portal stores for subsequent calls.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// RegisterPayload is the upstream account-creation payload.
type RegisterPayload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	Role        string `json:"role"`
}

// Login exchanges credentials for an identity and bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "auth", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account upstream.
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", "auth", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
