// Package cli is the interactive operator terminal for the LinkLedger
// records API. It wires the session manager, gateway, and workflow services
// together and drives them from a REPL.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/linkledger/lenderctl/internal/client/account"
	"github.com/linkledger/lenderctl/internal/client/borrower"
	"github.com/linkledger/lenderctl/internal/client/config"
	"github.com/linkledger/lenderctl/internal/client/consent"
	"github.com/linkledger/lenderctl/internal/client/docs"
	"github.com/linkledger/lenderctl/internal/client/gateway"
	"github.com/linkledger/lenderctl/internal/client/risk"
	"github.com/linkledger/lenderctl/internal/client/session"
	"github.com/linkledger/lenderctl/internal/logging"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	sessions *session.Manager

	consents  *consent.Service
	borrowers *borrower.Service
	riskView  *risk.Service
	accounts  *account.Service
	documents *docs.Fetcher

	reader *bufio.Reader

	// Rendered state of the last consent listing: the records by id (for
	// approve/reject/viewdoc row lookup) and the filters to re-apply on
	// refresh.
	lastConsents    []consent.Record
	consentStatus   consent.Status
	consentIDFilter string
}

// NewApp builds the session context once and passes it into each component
// at composition time; nothing looks the session up ambiently.
func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	db, err := session.OpenDB(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	sessions := session.NewManager(db, nil)
	gw := gateway.New(cfg.APIBaseURL, sessions, logger)
	sessions.SetAPI(gw)

	gw.SetUnauthorizedHook(func(ctx context.Context) {
		_ = sessions.Destroy(ctx)
		printlnFn("Session expired, please log in again.")
	})

	if err := sessions.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return &App{
		config:        cfg,
		log:           logger,
		sessions:      sessions,
		consents:      consent.NewService(gw),
		borrowers:     borrower.NewService(gw),
		riskView:      risk.NewService(gw, logger),
		accounts:      account.NewService(gw),
		documents:     docs.NewFetcher(gw, cfg.DocumentTTL, logger),
		reader:        bufio.NewReader(os.Stdin),
		consentStatus: consent.StatusPending,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	printlnFn("LinkLedger lender terminal (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	_, err := a.sessions.Require()
	return err == nil
}

func (a *App) isAdmin() bool {
	return a.sessions.RequireRole(session.RoleAdmin) == nil
}

func (a *App) getStatus() string {
	s, err := a.sessions.Require()
	if err != nil {
		return "(logged out)"
	}
	return fmt.Sprintf("(%s %s)", s.Email, s.Role)
}
