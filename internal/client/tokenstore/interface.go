// Package tokenstore persists the session credential and the cached user
// record in a local sqlite database, the terminal client's analog of the
// browser's profile-scoped storage. Only the session manager writes to it;
// the gateway reads the access token per call.
package tokenstore

import (
	"context"

	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/models"
)

// Store is the persisted session boundary.
//
// Contract:
//   - SaveTokens persists a complete pair plus its absolute expiry atomically.
//   - ClearTokens removes the token fields, the cached user, and any legacy
//     demo-mode keys.
//   - Tokens returns common.ErrNoSession when no pair is stored.
//   - IsAuthenticated: access token present and now < expiry.
//   - IsExpiringSoon: now > expiry - margin, or no expiry recorded.
type Store interface {
	SaveTokens(ctx context.Context, pair models.TokenPair) error
	ClearTokens(ctx context.Context) error
	Tokens(ctx context.Context) (models.TokenPair, error)
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SaveUser(ctx context.Context, u *models.User) error
	StoredUser(ctx context.Context) (*models.User, error)
	IsAuthenticated(ctx context.Context) bool
	IsExpiringSoon(ctx context.Context) bool
}
