// Package models defines the canonical client-side data model: the current
// user, the token pair, and explainability audit events. Field names follow
// the gateway's wire contract (snake_case JSON).
package models

import "time"

// Role is the fixed privilege enumeration used by the licensing workflow.
type Role string

const (
	// RoleReceiver is the lowest-privilege role and the default assumed when
	// the backend omits or sends an unknown role.
	RoleReceiver Role = "RECEIVER"
	RoleReviewer Role = "REVIEWER"
	RoleApprover Role = "APPROVER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole maps a raw backend role value onto the enumeration. Unknown
// values degrade to RoleReceiver rather than failing the whole response.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleReceiver, RoleReviewer, RoleApprover, RoleAdmin:
		return Role(raw)
	default:
		return RoleReceiver
	}
}

// User is the identity record owned by the session manager. It is replaced
// wholesale on each successful auth operation and never patched field by
// field on the client.
type User struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	FullName         string     `json:"full_name"`
	Department       string     `json:"department,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Position         string     `json:"position,omitempty"`
	Role             Role       `json:"role"`
	IsActive         bool       `json:"is_active"`
	IsLocked         bool       `json:"is_locked"`
	Has2FAEnabled    bool       `json:"has_2fa_enabled"`
	HasAcceptedTerms bool       `json:"has_accepted_terms"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Profile carries the mutable part of a user record for profile updates.
type Profile struct {
	FullName   string `json:"full_name"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position,omitempty"`
}
