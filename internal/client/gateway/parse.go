package gateway

import (
	"time"

	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/models"
)

// The backend's response shapes vary between snake_case and camelCase field
// naming depending on which service answered. All tolerance and per-field
// defaulting lives here, in one place, instead of at each call site.

func pickString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func pickBool(raw map[string]any, keys ...string) bool {
	for _, k := range keys {
		if v, ok := raw[k].(bool); ok {
			return v
		}
	}
	return false
}

func pickInt(raw map[string]any, keys ...string) int64 {
	for _, k := range keys {
		// encoding/json decodes every number into float64.
		if v, ok := raw[k].(float64); ok {
			return int64(v)
		}
	}
	return 0
}

func pickTime(raw map[string]any, keys ...string) (time.Time, bool) {
	s := pickString(raw, keys...)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseUser maps a raw backend user object onto the canonical User model.
//
// Default-per-field policy:
//   - email, full_name: fall back to fallbackEmail so the UI always has a
//     label for the signed-in principal;
//   - role: unknown or missing degrades to the lowest-privilege role;
//   - created_at/updated_at: default to the capture time;
//   - flags: default false.
func parseUser(raw map[string]any, fallbackEmail string, now time.Time) *models.User {
	if raw == nil {
		raw = map[string]any{}
	}

	u := &models.User{
		ID:               pickString(raw, "id"),
		Email:            pickString(raw, "email"),
		FullName:         pickString(raw, "full_name", "fullName", "first_name"),
		Department:       pickString(raw, "department"),
		Phone:            pickString(raw, "phone"),
		Position:         pickString(raw, "position"),
		Role:             models.ParseRole(pickString(raw, "role")),
		IsActive:         pickBool(raw, "is_active", "isActive"),
		IsLocked:         pickBool(raw, "is_locked", "isLocked"),
		Has2FAEnabled:    pickBool(raw, "has_2fa_enabled", "has2faEnabled"),
		HasAcceptedTerms: pickBool(raw, "has_accepted_terms", "hasAcceptedTerms"),
	}
	if u.Email == "" {
		u.Email = fallbackEmail
	}
	if u.FullName == "" {
		u.FullName = u.Email
	}
	if ts, ok := pickTime(raw, "last_login", "lastLogin"); ok {
		u.LastLogin = &ts
	}
	if ts, ok := pickTime(raw, "created_at", "createdAt"); ok {
		u.CreatedAt = ts
	} else {
		u.CreatedAt = now
	}
	if ts, ok := pickTime(raw, "updated_at", "updatedAt"); ok {
		u.UpdatedAt = ts
	} else {
		u.UpdatedAt = now
	}
	return u
}

// parseTokens maps a raw token response onto a TokenPair.
//
// Defaults: token_type "bearer", expires_in 1800 seconds. The refresh
// endpoint does not rotate refresh tokens, so when the response omits one
// the caller's current token (fallbackRefresh) is kept. The access token has
// no default; its absence is the caller's error to raise.
func parseTokens(raw map[string]any, fallbackRefresh string) models.TokenPair {
	pair := models.TokenPair{
		AccessToken:  pickString(raw, "access_token", "accessToken"),
		RefreshToken: pickString(raw, "refresh_token", "refreshToken"),
		TokenType:    pickString(raw, "token_type", "tokenType"),
		ExpiresIn:    pickInt(raw, "expires_in", "expiresIn"),
	}
	if pair.RefreshToken == "" {
		pair.RefreshToken = fallbackRefresh
	}
	if pair.TokenType == "" {
		pair.TokenType = "bearer"
	}
	if pair.ExpiresIn == 0 {
		pair.ExpiresIn = 1800
	}
	return pair
}

// parseAuditEvent maps one raw explainability event.
func parseAuditEvent(raw map[string]any, now time.Time) models.AuditEvent {
	ev := models.AuditEvent{
		ActorID:       pickString(raw, "actor_id", "actorId"),
		ActorRole:     pickString(raw, "actor_role", "actorRole"),
		Action:        pickString(raw, "action"),
		Resource:      pickString(raw, "resource"),
		Outcome:       models.Outcome(pickString(raw, "outcome")),
		Reason:        pickString(raw, "reason"),
		PolicyVersion: pickString(raw, "policy_version", "policyVersion"),
	}
	if ts, ok := pickTime(raw, "created_at", "createdAt"); ok {
		ev.CreatedAt = ts
	} else {
		ev.CreatedAt = now
	}
	return ev
}
