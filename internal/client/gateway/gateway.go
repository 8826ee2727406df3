// Package gateway wraps the licensing backend's HTTP auth surface. It owns
// request serialization, bearer-credential attachment, typed error mapping,
// and normalization of the backend's loosely shaped responses into the
// canonical client models.
package gateway

import (
	"context"

	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/models"
)

// TokenSource yields the currently stored access token. The gateway reads it
// per call, never caches it, so a just-refreshed token is always used.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// RegisterRequest mirrors POST /api/auth/register.
type RegisterRequest struct {
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	Department       string `json:"department,omitempty"`
	HasAcceptedTerms bool   `json:"has_accepted_terms"`
}

// RegisterResult acknowledges a completed registration. Accounts activate
// immediately; there is no e-mail confirmation step.
type RegisterResult struct {
	Email   string
	Message string
}

// LoginRequest mirrors POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the normalized login outcome. When the backend signals a
// step-up requirement, Requires2FA is set, StepUpToken carries the interim
// credential, and User/Tokens are empty — the login is not complete yet.
type LoginResult struct {
	User        *models.User
	Tokens      models.TokenPair
	Requires2FA bool
	StepUpToken string
}

// Verify2FARequest completes a stepped-up login.
type Verify2FARequest struct {
	Token    string `json:"token"`
	TOTPCode string `json:"totp_code"`
}

// AuthResult is a completed authentication: the canonical user plus a full
// token pair.
type AuthResult struct {
	User   *models.User
	Tokens models.TokenPair
}

// ResetPasswordRequest mirrors POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	ResetToken      string `json:"reset_token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// TwoFactorSetup is the enrollment material returned by Enable2FA.
type TwoFactorSetup struct {
	Secret      string
	QRCode      string
	BackupCodes []string
}

// Gateway is the backend capability surface, one operation per endpoint.
//
// Operations documented as unavailable (the 2FA family, forgot/reset
// password) return common.ErrNotAvailable without touching the network;
// callers must treat that as an expected failure, not a bug.
type Gateway interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Verify2FA(ctx context.Context, req Verify2FARequest) (*AuthResult, error)

	// Refresh mints a new access token from the given refresh token. When the
	// backend omits a rotated refresh token, the passed one is kept.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, profile models.Profile) (*models.User, error)

	Enable2FA(ctx context.Context, phone string) (*TwoFactorSetup, error)
	Verify2FASetup(ctx context.Context, totpCode, backupCode string) error
	Disable2FA(ctx context.Context, totpCode string) error

	// Explain fetches the audit trail correlated by trace id.
	Explain(ctx context.Context, traceID string) ([]models.AuditEvent, error)
}
