package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/oakfield-primary/portal-api/pkg/config"
	appErrors "github.com/oakfield-primary/portal-api/pkg/errors"
)

type tokenContextKey struct{}

// WithToken returns a context carrying the session's upstream bearer token.
// The session middleware stamps it once per request; every gateway call on
// that context attaches it automatically.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func tokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenContextKey{}).(string); ok {
		return token
	}
	return ""
}

// CallObserver receives timing for upstream calls. Satisfied by the metrics
// service; nil disables observation.
type CallObserver interface {
	ObserveUpstreamCall(resource string, status int, duration time.Duration)
}

// Client talks to the admissions REST API. Every response is decoded from the
// uniform success/data/message envelope. An unauthorized status is returned
// as a typed error; navigation is left to the caller's coordinator.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer CallObserver
}

// New constructs the upstream client.
func New(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// SetObserver installs an upstream call observer.
func (c *Client) SetObserver(obs CallObserver) {
	c.observer = obs
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path, resource string, body, out interface{}) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode upstream payload")
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token := tokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(resource, 0, start)
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "admissions service unreachable")
	}
	defer resp.Body.Close()
	c.observe(resource, resp.StatusCode, start)

	if resp.StatusCode == http.StatusUnauthorized {
		return appErrors.Clone(appErrors.ErrUpstreamAuth, "")
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read upstream response")
	}

	if resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		if resp.StatusCode >= 400 {
			return c.statusError(resp.StatusCode, "")
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream response")
	}

	if resp.StatusCode >= 400 || !env.Success {
		return c.statusError(resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream data")
		}
	}
	return nil
}

func (c *Client) statusError(status int, message string) error {
	switch status {
	case http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, message)
	case http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrForbidden, message)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		if message == "" {
			message = "request rejected by admissions service"
		}
		return appErrors.New(appErrors.ErrValidation.Code, status, message)
	default:
		if message == "" {
			message = fmt.Sprintf("admissions service error (status %d)", status)
		}
		return appErrors.Clone(appErrors.ErrUpstream, message)
	}
}

func (c *Client) observe(resource string, status int, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstreamCall(resource, status, time.Since(start))
}
