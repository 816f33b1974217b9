package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/oakfield-primary/portal-api/pkg/config"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1/accounts:resetPassword"

// FirebaseProvider generates reset links through the admin SDK and
// verifies/consumes out-of-band codes through the Identity Toolkit
// REST endpoint, which the admin SDK does not expose.
type FirebaseProvider struct {
	client    *firebaseauth.Client
	webAPIKey string
	settings  *firebaseauth.ActionCodeSettings
	http      *http.Client
}

func NewFirebaseProvider(ctx context.Context, cfg config.IdentityConfig) (*FirebaseProvider, error) {
	if strings.TrimSpace(cfg.CredentialsFile) == "" {
		return nil, errors.New("identity credentials file is required")
	}
	if strings.TrimSpace(cfg.WebAPIKey) == "" {
		return nil, errors.New("identity web API key is required")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init identity app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init identity auth client: %w", err)
	}

	var settings *firebaseauth.ActionCodeSettings
	if cfg.ContinueURL != "" {
		settings = &firebaseauth.ActionCodeSettings{URL: cfg.ContinueURL}
	}

	return &FirebaseProvider{
		client:    client,
		webAPIKey: cfg.WebAPIKey,
		settings:  settings,
		http:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (p *FirebaseProvider) GenerateResetLink(ctx context.Context, email string) (string, error) {
	var link string
	var err error
	if p.settings != nil {
		link, err = p.client.PasswordResetLinkWithSettings(ctx, email, p.settings)
	} else {
		link, err = p.client.PasswordResetLink(ctx, email)
	}
	if err != nil {
		if firebaseauth.IsUserNotFound(err) {
			return "", ErrEmailNotFound
		}
		return "", appErrors.Wrap(err, "IDENTITY_PROVIDER", http.StatusBadGateway, "identity provider request failed")
	}
	return link, nil
}

func (p *FirebaseProvider) VerifyResetCode(ctx context.Context, oobCode string) (string, error) {
	var result struct {
		Email string `json:"email"`
	}
	if err := p.resetPassword(ctx, map[string]string{"oobCode": oobCode}, &result); err != nil {
		return "", err
	}
	return result.Email, nil
}

func (p *FirebaseProvider) ConfirmReset(ctx context.Context, oobCode, newPassword string) error {
	payload := map[string]string{"oobCode": oobCode, "newPassword": newPassword}
	return p.resetPassword(ctx, payload, nil)
}

func (p *FirebaseProvider) resetPassword(ctx context.Context, payload map[string]string, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal reset payload: %w", err)
	}

	endpoint := identityToolkitURL + "?key=" + url.QueryEscape(p.webAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build reset request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, "IDENTITY_PROVIDER", http.StatusBadGateway, "identity provider request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read reset response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var failure struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(raw, &failure)
		// Weak-password responses carry a trailing explanation after a colon.
		code := failure.Error.Message
		if i := strings.IndexAny(code, " :"); i > 0 {
			code = code[:i]
		}
		if mapped := mapIdentityError(code); mapped != nil {
			return mapped
		}
		return appErrors.New("IDENTITY_PROVIDER", http.StatusBadGateway, "identity provider request failed")
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode reset response: %w", err)
		}
	}
	return nil
}
