package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/gateway"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/models"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/session"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/tokenstore"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/common"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInputs replaces the interactive input seams with scripted answers. Each
// getSimpleText call consumes the next answer; getPassword always returns a
// fresh copy of password (the commands wipe the slice they receive).
func stubInputs(t *testing.T, answers []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		require.Less(t, i, len(answers), "more prompts than scripted answers")
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		return append([]byte(nil), password...), nil
	}
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func muteOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			if s, ok := a.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

type fakeGateway struct {
	RegisterRet *gateway.RegisterResult
	RegisterErr error
	LastReg     gateway.RegisterRequest
	RegCalls    int

	LoginRet   *gateway.LoginResult
	LoginErr   error
	LoginCalls int

	Verify2FARet *gateway.AuthResult
	Verify2FAErr error
}

func (f *fakeGateway) Register(ctx context.Context, req gateway.RegisterRequest) (*gateway.RegisterResult, error) {
	f.LastReg = req
	f.RegCalls++
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeGateway) Login(ctx context.Context, req gateway.LoginRequest) (*gateway.LoginResult, error) {
	f.LoginCalls++
	return f.LoginRet, f.LoginErr
}

func (f *fakeGateway) Verify2FA(ctx context.Context, req gateway.Verify2FARequest) (*gateway.AuthResult, error) {
	return f.Verify2FARet, f.Verify2FAErr
}

func (f *fakeGateway) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	return models.TokenPair{}, common.ErrNoRefreshToken
}

func (f *fakeGateway) ForgotPassword(ctx context.Context, email string) error { return nil }
func (f *fakeGateway) ResetPassword(ctx context.Context, req gateway.ResetPasswordRequest) error {
	return nil
}
func (f *fakeGateway) CurrentUser(ctx context.Context) (*models.User, error) { return nil, nil }
func (f *fakeGateway) UpdateProfile(ctx context.Context, profile models.Profile) (*models.User, error) {
	return nil, nil
}
func (f *fakeGateway) Enable2FA(ctx context.Context, phone string) (*gateway.TwoFactorSetup, error) {
	return nil, common.ErrNotAvailable
}
func (f *fakeGateway) Verify2FASetup(ctx context.Context, totpCode, backupCode string) error {
	return common.ErrNotAvailable
}
func (f *fakeGateway) Disable2FA(ctx context.Context, totpCode string) error {
	return common.ErrNotAvailable
}
func (f *fakeGateway) Explain(ctx context.Context, traceID string) ([]models.AuditEvent, error) {
	return nil, nil
}

var _ gateway.Gateway = (*fakeGateway)(nil)

// newTestApp builds an App over a real manager, a fake gateway and an
// in-memory session database with the real migrations applied.
func newTestApp(t *testing.T, fg *fakeGateway) *App {
	t.Helper()
	ctx := context.Background()

	db, err := tokenstore.Open(ctx, "file:cli_"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := tokenstore.NewSQLiteStore(db)
	sess := session.NewManager(fg, store, logging.NewDefault())
	sess.Restore(ctx)

	return &App{
		session: sess,
		gw:      fg,
		db:      db,
		log:     logging.NewDefault(),
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

func TestRegister_Success(t *testing.T) {
	muteOutput(t)
	fg := &fakeGateway{RegisterRet: &gateway.RegisterResult{Email: "alice@example.org"}}
	a := newTestApp(t, fg)

	restore := stubInputs(t, []string{"alice@example.org", "Alice Trần", "Phòng Tiếp nhận", "y"}, nil)
	defer restore()

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, 1, fg.RegCalls)
	assert.Equal(t, "alice@example.org", fg.LastReg.Email)
	assert.Equal(t, "Alice Trần", fg.LastReg.FullName)
	assert.True(t, fg.LastReg.HasAcceptedTerms)
}

func TestRegister_ValidationStopsBeforeNetwork(t *testing.T) {
	out := muteOutput(t)
	fg := &fakeGateway{}
	a := newTestApp(t, fg)

	restore := stubInputs(t, []string{"not-an-email", "Alice", "", "y"}, nil)
	defer restore()

	require.NoError(t, a.Register(context.Background()))

	assert.Zero(t, fg.RegCalls, "invalid form must not reach the gateway")
	require.NotEmpty(t, *out)
}

func TestLogin_Success(t *testing.T) {
	muteOutput(t)
	u := &models.User{ID: "u-1", Email: "alice@example.org", FullName: "Alice", Role: models.RoleReviewer}
	fg := &fakeGateway{LoginRet: &gateway.LoginResult{
		User:   u,
		Tokens: models.TokenPair{AccessToken: "acc", RefreshToken: "ref", TokenType: "bearer", ExpiresIn: 1800},
	}}
	a := newTestApp(t, fg)

	restore := stubInputs(t, []string{"alice@example.org"}, []byte("secret"))
	defer restore()

	require.NoError(t, a.Login(context.Background()))

	assert.True(t, a.isLoggedIn())
	assert.Contains(t, a.getStatus(), "alice@example.org")
}

func TestLogin_StepUpHintsAtCodeCommand(t *testing.T) {
	out := muteOutput(t)
	fg := &fakeGateway{LoginRet: &gateway.LoginResult{Requires2FA: true, StepUpToken: "step-1"}}
	a := newTestApp(t, fg)

	restore := stubInputs(t, []string{"alice@example.org"}, []byte("secret"))
	defer restore()

	require.NoError(t, a.Login(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "(2fa pending)", a.getStatus())
	assert.Contains(t, strings.Join(*out, "\n"), "code")
}

func TestCode_WithoutPendingStepUp(t *testing.T) {
	out := muteOutput(t)
	fg := &fakeGateway{}
	a := newTestApp(t, fg)

	require.NoError(t, a.Code(context.Background()))
	assert.Contains(t, strings.Join(*out, "\n"), "No two-factor login pending")
}

func TestCode_CompletesStepUp(t *testing.T) {
	muteOutput(t)
	u := &models.User{ID: "u-1", Email: "alice@example.org", FullName: "Alice", Role: models.RoleReviewer}
	fg := &fakeGateway{
		LoginRet: &gateway.LoginResult{Requires2FA: true, StepUpToken: "step-1"},
		Verify2FARet: &gateway.AuthResult{
			User:   u,
			Tokens: models.TokenPair{AccessToken: "acc", RefreshToken: "ref", TokenType: "bearer", ExpiresIn: 1800},
		},
	}
	a := newTestApp(t, fg)

	restore := stubInputs(t, []string{"alice@example.org", "123456"}, []byte("secret"))
	defer restore()

	require.NoError(t, a.Login(context.Background()))
	require.NoError(t, a.Code(context.Background()))

	assert.True(t, a.isLoggedIn())
}

func TestLogout(t *testing.T) {
	muteOutput(t)
	u := &models.User{ID: "u-1", Email: "alice@example.org", FullName: "Alice", Role: models.RoleAdmin}
	fg := &fakeGateway{LoginRet: &gateway.LoginResult{
		User:   u,
		Tokens: models.TokenPair{AccessToken: "acc", RefreshToken: "ref", TokenType: "bearer", ExpiresIn: 1800},
	}}
	a := newTestApp(t, fg)

	restore := stubInputs(t, []string{"alice@example.org"}, []byte("secret"))
	defer restore()

	require.NoError(t, a.Login(context.Background()))
	require.True(t, a.isLoggedIn())

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.getStatus())
}
