// Package common contains shared constants and sentinel errors used across
// the admin client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotAvailable marks a backend capability the gateway does not expose
	// yet (2FA family, forgot/reset password). It is an expected failure mode,
	// not a bug; callers surface it like any other gateway error.
	ErrNotAvailable = errors.New("endpoint not available in current gateway")

	// Session-store errors.
	ErrNoSession      = errors.New("no stored session")
	ErrNoRefreshToken = errors.New("no refresh token available")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
