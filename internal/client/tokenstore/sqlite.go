package tokenstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/models"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/common"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

// Keys of the canonical session record.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyTokenType    = "token_type"
	keyExpiresAt    = "expires_at"
	keyUser         = "user"
)

// legacyKeys belonged to the retired demo-mode session store. They are never
// read; ClearTokens deletes them so a stale demo session cannot shadow the
// canonical one.
var legacyKeys = []string{"hccvn_token", "hccvn_user", "hccvn_role"}

// SQLiteStore is the Store implementation over the local session database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) delete(ctx context.Context, q dbx.DBTX, key string) error {
	_, err := q.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", key, err)
	}
	return nil
}

// SaveTokens persists all token fields plus the absolute expiry in one
// transaction, so a reader never observes a partially written pair.
func (s *SQLiteStore) SaveTokens(ctx context.Context, pair models.TokenPair) error {
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return fmt.Errorf("incomplete token pair")
	}
	if pair.TokenType == "" {
		pair.TokenType = "bearer"
	}

	expiresAt := s.resolveExpiry(pair)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, keyAccessToken, []byte(pair.AccessToken)); err != nil {
			return err
		}
		if err := s.set(ctx, tx, keyRefreshToken, []byte(pair.RefreshToken)); err != nil {
			return err
		}
		if err := s.set(ctx, tx, keyTokenType, []byte(pair.TokenType)); err != nil {
			return err
		}
		return s.set(ctx, tx, keyExpiresAt, []byte(expiresAt.Format(time.RFC3339Nano)))
	})
}

// resolveExpiry picks the absolute expiry for a pair: an explicit ExpiresAt
// wins, then capture-time + expires_in, then the exp claim of the access
// token itself, then the default TTL.
func (s *SQLiteStore) resolveExpiry(pair models.TokenPair) time.Time {
	if !pair.ExpiresAt.IsZero() {
		return pair.ExpiresAt
	}
	if pair.ExpiresIn > 0 {
		return s.now().Add(time.Duration(pair.ExpiresIn) * time.Second)
	}
	if exp, ok := jwtExpiry(pair.AccessToken); ok {
		return exp
	}
	return s.now().Add(common.DefaultTokenTTL)
}

// jwtExpiry decodes the exp claim of a JWT access token without verifying
// the signature. The client has no signing key; the claim is only used to
// schedule refreshes, never as an authorization decision.
func jwtExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// ClearTokens removes the whole persisted session: token fields, cached user,
// and the legacy demo-mode keys.
func (s *SQLiteStore) ClearTokens(ctx context.Context) error {
	keys := append([]string{keyAccessToken, keyRefreshToken, keyTokenType, keyExpiresAt, keyUser}, legacyKeys...)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if err := s.delete(ctx, tx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Tokens reads back the stored pair. Returns common.ErrNoSession when no
// access token is stored.
func (s *SQLiteStore) Tokens(ctx context.Context) (models.TokenPair, error) {
	var pair models.TokenPair

	access, err := s.get(ctx, s.db, keyAccessToken)
	if err != nil {
		return pair, err
	}
	if len(access) == 0 {
		return pair, common.ErrNoSession
	}
	refresh, err := s.get(ctx, s.db, keyRefreshToken)
	if err != nil {
		return pair, err
	}
	tokenType, err := s.get(ctx, s.db, keyTokenType)
	if err != nil {
		return pair, err
	}
	rawExpiry, err := s.get(ctx, s.db, keyExpiresAt)
	if err != nil {
		return pair, err
	}

	pair.AccessToken = string(access)
	pair.RefreshToken = string(refresh)
	pair.TokenType = string(tokenType)
	if len(rawExpiry) > 0 {
		if at, perr := time.Parse(time.RFC3339Nano, string(rawExpiry)); perr == nil {
			pair.ExpiresAt = at
			if d := at.Sub(s.now()); d > 0 {
				pair.ExpiresIn = int64(d / time.Second)
			}
		}
	}
	return pair, nil
}

func (s *SQLiteStore) AccessToken(ctx context.Context) (string, error) {
	v, err := s.get(ctx, s.db, keyAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) RefreshToken(ctx context.Context) (string, error) {
	v, err := s.get(ctx, s.db, keyRefreshToken)
	if err != nil {
		return "", err
	}
	if len(v) == 0 {
		return "", common.ErrNoRefreshToken
	}
	return string(v), nil
}

func (s *SQLiteStore) SaveUser(ctx context.Context, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.set(ctx, s.db, keyUser, data)
}

// StoredUser returns the cached user record, or nil when none is stored or
// the stored record does not decode.
func (s *SQLiteStore) StoredUser(ctx context.Context) (*models.User, error) {
	data, err := s.get(ctx, s.db, keyUser)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, nil
	}
	return &u, nil
}

// IsAuthenticated reports whether an access token is stored and the recorded
// expiry is still in the future. Storage errors read as "not authenticated".
func (s *SQLiteStore) IsAuthenticated(ctx context.Context) bool {
	pair, err := s.Tokens(ctx)
	if err != nil {
		return false
	}
	if pair.ExpiresAt.IsZero() {
		return false
	}
	return s.now().Before(pair.ExpiresAt)
}

// IsExpiringSoon reports whether the token is inside the refresh margin of
// its expiry. A missing expiry counts as expired.
func (s *SQLiteStore) IsExpiringSoon(ctx context.Context) bool {
	pair, err := s.Tokens(ctx)
	if err != nil || pair.ExpiresAt.IsZero() {
		return true
	}
	return s.now().After(pair.ExpiresAt.Add(-common.TokenRefreshMargin))
}

var _ Store = (*SQLiteStore)(nil)
