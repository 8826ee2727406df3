package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/config"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/gateway"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/session"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/client/tokenstore"
	"github.com/Huutuanapp/hccvn-admin-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// App ties the configuration, session manager and gateway together and
// implements the REPL command surface.
type App struct {
	config  *config.Config
	session *session.Manager
	gw      gateway.Gateway
	db      *sql.DB
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := tokenstore.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}

	store := tokenstore.NewSQLiteStore(db)
	gw := gateway.NewHTTPGateway(c.GatewayBaseURL, store, log, c.RequestTimeout)
	sess := session.NewManager(gw, store, log)

	return &App{
		config:  c,
		session: sess,
		gw:      gw,
		db:      db,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the previous session and blocks in the REPL until the user
// exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	a.session.Restore(ctx)
	if u := a.session.CurrentUser(); u != nil {
		printlnFn(fmt.Sprintf("Welcome back, %s", u.FullName))
	}
	if notice := a.session.TakeNotice(); notice != "" {
		printlnFn(notice)
	}

	printlnFn("Licensing admin CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus renders the prompt decoration: the signed-in user and role, or a
// hint that a two-factor step-up is pending.
func (a *App) getStatus() string {
	if u := a.session.CurrentUser(); u != nil {
		return fmt.Sprintf("(%s %s)", u.Email, u.Role)
	}
	if m := a.session.Modal(); m.Open && m.Type == session.ModalVerify2FA {
		return "(2fa pending)"
	}
	return ""
}

// reportErr prints the user-facing message of a failed session operation.
// The session manager has already mapped the error onto the modal state.
func (a *App) reportErr(err error) {
	if err == nil {
		return
	}
	if msg := a.session.Modal().Err; msg != "" {
		printlnFn("Error:", msg)
		return
	}
	printlnFn("Error:", err.Error())
}
