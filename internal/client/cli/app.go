package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/pharmadesk/internal/client/client"
	"github.com/dmitrijs2005/pharmadesk/internal/client/config"
	"github.com/dmitrijs2005/pharmadesk/internal/client/localdb"
	"github.com/dmitrijs2005/pharmadesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pharmadesk/internal/client/services"
	"github.com/dmitrijs2005/pharmadesk/internal/client/session"
	"github.com/dmitrijs2005/pharmadesk/internal/logging"
)

type App struct {
	authService    services.AuthService
	productService services.ProductService
	reader         *bufio.Reader
	out            io.Writer
	log            logging.Logger
	db             *sql.DB
}

// NewApp wires storage, the API client and both flows from c.
// With c.Ephemeral the session lives in memory and no file is created.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	var (
		repo metadata.Repository
		db   *sql.DB
	)

	if c.Ephemeral {
		repo = metadata.NewMemoryRepository()
	} else {
		var err error
		db, err = localdb.Open(ctx, c.SessionDBPath)
		if err != nil {
			return nil, fmt.Errorf("error initializing session database: %w", err)
		}
		repo = metadata.NewSQLiteRepository(db)
	}

	apiClient := client.NewRESTClient(c.APIBaseURL, c.RequestTimeout)
	store := session.NewStore(repo, log)

	as := services.NewAuthService(ctx, apiClient, store, log)
	ps := services.NewProductService(apiClient, store, log)

	a := newApp(as, ps, os.Stdin, os.Stdout, log)
	a.db = db
	return a, nil
}

func newApp(as services.AuthService, ps services.ProductService, in io.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		authService:    as,
		productService: ps,
		reader:         bufio.NewReader(in),
		out:            out,
		log:            log,
	}
}

// Run shows the products screen for a restored session, then serves the
// REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to PharmaDesk (type 'help' for commands)")

	if a.isLoggedIn() {
		a.productService.Start(ctx)
		_ = a.List(ctx)
	}

	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the session database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.authService.State() == services.StateAuthenticated
}

func (a *App) status() string {
	if u := a.authService.User(); u != nil && a.isLoggedIn() {
		return u.DisplayName()
	}
	return "guest"
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
