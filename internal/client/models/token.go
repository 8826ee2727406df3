package models

import "time"

// TokenPair is the credential set minted by the backend. A pair is either
// fully populated or absent; partially filled pairs must never be persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`

	// ExpiresAt is the absolute expiry instant derived at capture time
	// (capture time + ExpiresIn). It is not part of the wire contract.
	ExpiresAt time.Time `json:"-"`
}

// Complete reports whether every wire field of the pair is populated.
func (p TokenPair) Complete() bool {
	return p.AccessToken != "" && p.RefreshToken != "" && p.TokenType != "" && p.ExpiresIn > 0
}

// WithExpiry returns a copy of the pair with ExpiresAt derived from now.
func (p TokenPair) WithExpiry(now time.Time) TokenPair {
	p.ExpiresAt = now.Add(time.Duration(p.ExpiresIn) * time.Second)
	return p
}
