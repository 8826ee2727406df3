package models

import "time"

// Outcome of a policy decision recorded in the explainability trail.
type Outcome string

const (
	OutcomeAllowed Outcome = "allowed"
	OutcomeDenied  Outcome = "denied"
)

// AuditEvent is a single backend policy decision correlated by trace id.
type AuditEvent struct {
	CreatedAt     time.Time `json:"created_at"`
	ActorID       string    `json:"actor_id"`
	ActorRole     string    `json:"actor_role"`
	Action        string    `json:"action"`
	Resource      string    `json:"resource"`
	Outcome       Outcome   `json:"outcome"`
	Reason        string    `json:"reason,omitempty"`
	PolicyVersion string    `json:"policy_version,omitempty"`
}
