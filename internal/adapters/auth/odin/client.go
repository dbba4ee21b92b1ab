package odin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"petvax-hub/internal/platform/httpclient"
	"petvax-hub/internal/ports/auth"

	"github.com/pkg/errors"
)

var (
	ErrOdinNotConfigured = errors.New("odin client not configured")
	ErrOdinUnauthorized  = errors.New("odin unauthorized")
	ErrOdinUpstream      = errors.New("odin upstream error")
)

const (
	defaultAPIKeyHeader = "X-Api-Key"
	defaultTimeout      = 5 * time.Second

	verifyPath = "/v1/tokens/verify"
)

// Config del cliente Odin (IAM remoto).
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

type Client struct {
	hc *httpclient.Client
	ok bool
}

func NewClient(cfg Config) (*Client, error) {
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = defaultAPIKeyHeader
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	hc, err := httpclient.New(cfg.BaseURL,
		httpclient.WithTimeout(timeout),
		httpclient.WithTransport(cfg.Transport),
		httpclient.WithHeader(header, apiKey),
	)
	if err != nil {
		return nil, errors.Wrap(err, "odin client")
	}

	return &Client{hc: hc, ok: hc.BaseURL != ""}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.ok
}

type verifyResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// VerifyToken llama a Odin para validar el token y traer claims.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrOdinUnauthorized
	}

	var out verifyResponse
	err := c.hc.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   verifyPath,
		// Algunos IAM esperan el token en Authorization aunque vaya en el body.
		Headers: map[string]string{"Authorization": "Bearer " + token},
		Body:    map[string]string{"token": token},
	}, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return auth.Claims{}, ErrOdinUnauthorized
			}
		}
		return auth.Claims{}, errors.Wrap(ErrOdinUpstream, err.Error())
	}

	uid := strings.TrimSpace(out.UserID)
	if uid == "" {
		return auth.Claims{}, errors.Wrap(ErrOdinUpstream, "response missing user_id")
	}

	return auth.Claims{
		UserID: uid,
		Email:  strings.TrimSpace(out.Email),
	}, nil
}
