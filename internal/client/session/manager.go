// Package session owns the authentication state machine of the admin client:
// the canonical "current user", the modal flow coordination, token refresh,
// and session restoration at startup.
//
// A Manager is constructed once at application start and handed to the
// presentation layer explicitly; nothing in this package is reachable through
// package-level state.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/gateway"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/models"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/tokenstore"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/common"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/logging"
)

// Phase is the top-level session state. "2FA pending" is not a phase: while
// the step-up modal is open the session is still Unauthenticated.
type Phase string

const (
	PhaseInitializing    Phase = "initializing"
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseAuthenticated   Phase = "authenticated"
)

// Manager is the single source of truth for the session. Only the Manager
// writes to the token store; the gateway reads the access token per call.
//
// State updates from overlapping calls are applied in completion order, with
// one guard: every mutating operation bumps an internal generation counter,
// and a completion whose generation is no longer current is discarded, so a
// stale login/refresh response can never clobber newer state.
type Manager struct {
	gw    gateway.Gateway
	store tokenstore.Store
	log   logging.Logger

	mu     sync.Mutex
	phase  Phase
	user   *models.User
	modal  ModalState
	notice string
	gen    uint64
}

func NewManager(gw gateway.Gateway, store tokenstore.Store, log logging.Logger) *Manager {
	return &Manager{
		gw:    gw,
		store: store,
		log:   log,
		phase: PhaseInitializing,
	}
}

// Phase returns the current top-level state.
func (m *Manager) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// IsAuthenticated reports whether a login has fully completed.
func (m *Manager) IsAuthenticated() bool {
	return m.Phase() == PhaseAuthenticated
}

// CurrentUser returns the canonical user record, nil when unauthenticated.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Modal returns a snapshot of the modal state.
func (m *Manager) Modal() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modal
}

// TakeNotice returns the pending deferred notice and clears it.
func (m *Manager) TakeNotice() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.notice
	m.notice = ""
	return n
}

// OpenModal opens the given flow, replacing any previous modal state.
func (m *Manager) OpenModal(t ModalType, data map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modal = ModalState{Type: t, Open: true, Data: data}
}

// CloseModal dismisses the active flow. In-flight requests are not aborted;
// their completions simply observe the closed modal (and a newer generation,
// if another operation started since).
func (m *Manager) CloseModal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modal = ModalState{}
}

// Restore re-establishes the session at startup. A live token restores the
// stored user optimistically without a network round-trip; an expiring or
// expired token triggers one silent refresh attempt. Every failure resolves
// to Unauthenticated without surfacing an error.
func (m *Manager) Restore(ctx context.Context) {
	gen := m.begin(nil)

	if m.store.IsAuthenticated(ctx) && !m.store.IsExpiringSoon(ctx) {
		if u, err := m.store.StoredUser(ctx); err == nil && u != nil {
			m.complete(gen, func() {
				m.user = u
				m.phase = PhaseAuthenticated
			})
			m.log.Info(ctx, "session restored", "user", u.Email)
			return
		}
	}

	refresh, err := m.store.RefreshToken(ctx)
	if err != nil {
		m.complete(gen, func() { m.phase = PhaseUnauthenticated })
		return
	}

	pair, err := m.gw.Refresh(ctx, refresh)
	if err != nil {
		m.log.Debug(ctx, "silent refresh failed", "error", err)
		_ = m.store.ClearTokens(ctx)
		m.complete(gen, func() { m.phase = PhaseUnauthenticated })
		return
	}

	if m.isStale(gen) {
		return
	}
	if err := m.store.SaveTokens(ctx, pair); err != nil {
		m.complete(gen, func() { m.phase = PhaseUnauthenticated })
		return
	}

	u, err := m.gw.CurrentUser(ctx)
	if err != nil {
		_ = m.store.ClearTokens(ctx)
		m.complete(gen, func() { m.phase = PhaseUnauthenticated })
		return
	}
	_ = m.store.SaveUser(ctx, u)

	m.complete(gen, func() {
		m.user = u
		m.phase = PhaseAuthenticated
	})
	m.log.Info(ctx, "session refreshed", "user", u.Email)
}

// Login authenticates with credentials already validated by the form layer.
// A step-up requirement moves the flow into the 2FA modal carrying the
// interim token; the session stays Unauthenticated until the code verifies.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	gen := m.beginModal()

	res, err := m.gw.Login(ctx, gateway.LoginRequest{Email: email, Password: password})
	if err != nil {
		return m.fail(ctx, gen, err)
	}

	if res.Requires2FA {
		m.complete(gen, func() {
			m.modal = ModalState{
				Type: ModalVerify2FA,
				Open: true,
				Data: map[string]string{DataStepUpToken: res.StepUpToken},
			}
		})
		return nil
	}

	if m.isStale(gen) {
		m.log.Debug(ctx, "discarding stale login result")
		return nil
	}
	if err := m.persist(ctx, res.Tokens, res.User); err != nil {
		return m.fail(ctx, gen, err)
	}

	m.complete(gen, func() {
		m.user = res.User
		m.phase = PhaseAuthenticated
		m.modal = ModalState{}
	})
	m.log.Info(ctx, "login complete", "user", res.User.Email)
	return nil
}

// Verify2FA completes a stepped-up login with the code the user entered.
// On failure the 2FA modal stays up with the error attached and the entered
// code discarded, so the user types a fresh one.
func (m *Manager) Verify2FA(ctx context.Context, code string) error {
	m.mu.Lock()
	token := m.modal.Value(DataStepUpToken)
	m.mu.Unlock()

	gen := m.beginModal()

	res, err := m.gw.Verify2FA(ctx, gateway.Verify2FARequest{Token: token, TOTPCode: code})
	if err != nil {
		m.complete(gen, func() {
			m.modal = ModalState{
				Type:    ModalVerify2FA,
				Open:    true,
				Err:     displayMessage(err),
				Data:    map[string]string{DataStepUpToken: token},
				Loading: false,
			}
		})
		return err
	}

	if m.isStale(gen) {
		return nil
	}
	if err := m.persist(ctx, res.Tokens, res.User); err != nil {
		return m.fail(ctx, gen, err)
	}

	m.complete(gen, func() {
		m.user = res.User
		m.phase = PhaseAuthenticated
		m.modal = ModalState{}
	})
	return nil
}

// Register creates an account. Accounts activate immediately, so success
// simply closes the modal: no tokens, no session change, no auto-login.
func (m *Manager) Register(ctx context.Context, req gateway.RegisterRequest) error {
	gen := m.beginModal()

	if _, err := m.gw.Register(ctx, req); err != nil {
		return m.fail(ctx, gen, err)
	}

	m.complete(gen, func() { m.modal = ModalState{} })
	m.log.Info(ctx, "registration complete", "email", req.Email)
	return nil
}

// ForgotPassword requests a reset and, on success, moves straight into the
// reset-password modal carrying the email — there is no intermediate
// "check your inbox" screen.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	gen := m.beginModal()

	if err := m.gw.ForgotPassword(ctx, email); err != nil {
		return m.fail(ctx, gen, err)
	}

	m.complete(gen, func() {
		m.modal = ModalState{
			Type: ModalResetPassword,
			Open: true,
			Data: map[string]string{DataEmail: email},
		}
	})
	return nil
}

// ResetPassword applies a password reset and, on success, returns the user
// to the login modal with a deferred success notice.
func (m *Manager) ResetPassword(ctx context.Context, req gateway.ResetPasswordRequest) error {
	gen := m.beginModal()

	if err := m.gw.ResetPassword(ctx, req); err != nil {
		return m.fail(ctx, gen, err)
	}

	m.complete(gen, func() {
		m.modal = ModalState{Type: ModalLogin, Open: true}
		m.notice = "Your password has been reset. Please sign in again."
	})
	return nil
}

// UpdateProfile replaces the stored user wholesale with the gateway's
// response; the client never patches user fields locally.
func (m *Manager) UpdateProfile(ctx context.Context, profile models.Profile) error {
	gen := m.beginModal()

	u, err := m.gw.UpdateProfile(ctx, profile)
	if err != nil {
		return m.fail(ctx, gen, err)
	}
	if m.isStale(gen) {
		return nil
	}
	_ = m.store.SaveUser(ctx, u)

	m.complete(gen, func() {
		m.user = u
		m.modal = ModalState{}
	})
	return nil
}

// Logout clears the persisted tokens and resets all state to the initial
// Unauthenticated state. It succeeds unconditionally: no network call is
// involved, and a store failure still resets the in-memory session.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.ClearTokens(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear persisted session", "error", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++ // in-flight completions become stale
	m.phase = PhaseUnauthenticated
	m.user = nil
	m.modal = ModalState{}
	m.notice = ""
}

// RefreshToken mints a fresh access token. A failure is not recoverable for
// the session: the user is logged out and the error propagates.
func (m *Manager) RefreshToken(ctx context.Context) error {
	gen := m.begin(nil)

	refresh, err := m.store.RefreshToken(ctx)
	if err != nil {
		m.Logout(ctx)
		return err
	}

	pair, err := m.gw.Refresh(ctx, refresh)
	if err != nil {
		m.Logout(ctx)
		return err
	}

	if m.isStale(gen) {
		m.log.Debug(ctx, "discarding stale refresh result")
		return nil
	}

	return m.store.SaveTokens(ctx, pair)
}

// isStale reports whether a newer operation superseded gen.
func (m *Manager) isStale(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen != gen
}

// begin starts a mutating operation: it bumps the generation and applies
// an optional state mutation under the lock, returning the generation the
// completion must present.
func (m *Manager) begin(mutate func()) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	if mutate != nil {
		mutate()
	}
	return m.gen
}

// beginModal is begin() plus the shared modal precondition: loading on,
// previous error cleared.
func (m *Manager) beginModal() uint64 {
	return m.begin(func() {
		m.modal.Loading = true
		m.modal.Err = ""
	})
}

// complete applies a state mutation unless a newer operation superseded this
// one, in which case the result is discarded.
func (m *Manager) complete(gen uint64, mutate func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return
	}
	mutate()
}

// fail records an operation failure on the active modal and re-raises the
// error. The caller's submit handler may treat the returned error as a
// no-op signal: the modal already displays it.
func (m *Manager) fail(ctx context.Context, gen uint64, err error) error {
	m.complete(gen, func() {
		m.modal.Loading = false
		m.modal.Err = displayMessage(err)
	})
	m.log.Debug(ctx, "auth operation failed", "error", err)
	return err
}

// persist writes tokens and user atomically enough for the client: tokens
// first (all-or-nothing in the store), then the cached user record.
func (m *Manager) persist(ctx context.Context, pair models.TokenPair, u *models.User) error {
	if err := m.store.SaveTokens(ctx, pair); err != nil {
		return err
	}
	return m.store.SaveUser(ctx, u)
}

// displayMessage maps an error onto the text shown on the modal.
func displayMessage(err error) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, common.ErrNotAvailable) {
		return "This feature is not available yet"
	}
	if errors.Is(err, common.ErrUnavailable) {
		return "The server is unavailable, please try again later"
	}
	return err.Error()
}
