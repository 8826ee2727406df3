package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/models"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/common"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/logging"
	"github.com/google/uuid"
)

// HTTPGateway is the Gateway implementation over the backend's REST surface.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	log     logging.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewHTTPGateway(baseURL string, tokens TokenSource, log logging.Logger, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		tokens:  tokens,
		log:     log,
		timeout: timeout,
		now:     time.Now,
	}
}

// do issues one JSON request and decodes the response object. The bearer
// credential is fetched from the token source on every call. Transport
// failures map to common.ErrUnavailable; non-2xx statuses map to *APIError.
func (g *HTTPGateway) do(ctx context.Context, method, path string, payload any) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if token, terr := g.tokens.AccessToken(ctx); terr == nil && token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	g.log.Debug(ctx, "gateway request", "method", method, "path", path)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := newAPIError(resp)
		g.log.Debug(ctx, "gateway error", "path", path, "status", apiErr.Status)
		return nil, apiErr
	}

	raw := map[string]any{}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return raw, nil
}

func (g *HTTPGateway) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	raw, err := g.do(ctx, http.MethodPost, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}

	res := &RegisterResult{
		Email:   req.Email,
		Message: pickString(raw, "message"),
	}
	if res.Message == "" {
		res.Message = "User registered successfully"
	}
	return res, nil
}

func (g *HTTPGateway) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	raw, err := g.do(ctx, http.MethodPost, "/api/auth/login", req)
	if err != nil {
		return nil, err
	}

	if pickBool(raw, "requires_2fa", "requires2fa") {
		return &LoginResult{
			Requires2FA: true,
			StepUpToken: pickString(raw, "two_fa_token", "token", "message"),
		}, nil
	}

	pair := parseTokens(raw, "")
	if pair.AccessToken == "" {
		return nil, fmt.Errorf("login response missing access token")
	}

	userRaw, _ := raw["user"].(map[string]any)
	return &LoginResult{
		User:   parseUser(userRaw, req.Email, g.now()),
		Tokens: pair,
	}, nil
}

// Verify2FA completes a stepped-up login. The 2FA family is not exposed by
// the current gateway contract.
func (g *HTTPGateway) Verify2FA(ctx context.Context, req Verify2FARequest) (*AuthResult, error) {
	return nil, common.ErrNotAvailable
}

func (g *HTTPGateway) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if refreshToken == "" {
		return models.TokenPair{}, common.ErrNoRefreshToken
	}

	raw, err := g.do(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	})
	if err != nil {
		return models.TokenPair{}, err
	}

	pair := parseTokens(raw, refreshToken)
	if pair.AccessToken == "" {
		return models.TokenPair{}, fmt.Errorf("refresh response missing access token")
	}
	return pair, nil
}

// ForgotPassword is not exposed by the current gateway contract.
func (g *HTTPGateway) ForgotPassword(ctx context.Context, email string) error {
	return common.ErrNotAvailable
}

// ResetPassword is not exposed by the current gateway contract.
func (g *HTTPGateway) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return common.ErrNotAvailable
}

func (g *HTTPGateway) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := g.do(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return parseUser(raw, "", g.now()), nil
}

func (g *HTTPGateway) UpdateProfile(ctx context.Context, profile models.Profile) (*models.User, error) {
	raw, err := g.do(ctx, http.MethodPut, "/api/auth/me", profile)
	if err != nil {
		return nil, err
	}
	// Some backend versions wrap the record in a "user" envelope.
	if userRaw, ok := raw["user"].(map[string]any); ok {
		raw = userRaw
	}
	return parseUser(raw, "", g.now()), nil
}

// Enable2FA is not exposed by the current gateway contract.
func (g *HTTPGateway) Enable2FA(ctx context.Context, phone string) (*TwoFactorSetup, error) {
	return nil, common.ErrNotAvailable
}

// Verify2FASetup is not exposed by the current gateway contract.
func (g *HTTPGateway) Verify2FASetup(ctx context.Context, totpCode, backupCode string) error {
	return common.ErrNotAvailable
}

// Disable2FA is not exposed by the current gateway contract.
func (g *HTTPGateway) Disable2FA(ctx context.Context, totpCode string) error {
	return common.ErrNotAvailable
}

func (g *HTTPGateway) Explain(ctx context.Context, traceID string) ([]models.AuditEvent, error) {
	raw, err := g.do(ctx, http.MethodGet, "/explain/"+url.PathEscape(traceID), nil)
	if err != nil {
		return nil, err
	}

	rawEvents, _ := raw["audit_events"].([]any)
	events := make([]models.AuditEvent, 0, len(rawEvents))
	for _, re := range rawEvents {
		m, ok := re.(map[string]any)
		if !ok {
			continue
		}
		events = append(events, parseAuditEvent(m, g.now()))
	}
	return events, nil
}

var _ Gateway = (*HTTPGateway)(nil)
