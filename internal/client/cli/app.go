package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/gradebook/internal/client/client"
	"github.com/dmitrijs2005/gradebook/internal/client/config"
	"github.com/dmitrijs2005/gradebook/internal/client/models"
	"github.com/dmitrijs2005/gradebook/internal/client/router"
	"github.com/dmitrijs2005/gradebook/internal/client/services"
	"github.com/dmitrijs2005/gradebook/internal/client/session"
	"github.com/dmitrijs2005/gradebook/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	store   session.Store
	db      *sql.DB
	auth    services.AuthService
	admin   *services.AdminService
	teacher *services.TeacherService
	table   *router.Table
	router  *router.Router
	reader  *bufio.Reader

	outMu sync.Mutex
	out   io.Writer

	// View state cached by the score entry page; dropped whenever the
	// session changes.
	viewGen uint64
	courses []models.Course
}

// NewApp wires the session store, the HTTP pipeline, the services and the
// router. An empty SessionDBPath keeps the session in memory.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	a := &App{
		config: c,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	if c.SessionDBPath == "" {
		a.store = session.NewMemoryStore()
	} else {
		db, err := session.OpenDatabase(ctx, c.SessionDBPath)
		if err != nil {
			log.Error(ctx, "error initializing session database", "path", c.SessionDBPath, "error", err)
			return nil, err
		}
		a.db = db
		a.store = session.NewSQLiteStore(db)
	}

	table := router.MustTable(router.DefaultRoutes())
	a.table = table
	guard := router.NewGuard(table, a.store,
		router.WithNotifier(a),
		router.WithGuardLogger(log.With("component", "guard")))
	a.router = router.New(table, guard, log.With("component", "router"))

	api, err := client.New(c.BaseURL, c.RequestTimeout, a.store,
		client.WithNavigator(client.NavigatorFunc(a.hardRedirect)),
		client.WithLogger(log.With("component", "http")))
	if err != nil {
		a.Close()
		return nil, err
	}

	a.auth = services.NewAuthService(api, a.store)
	a.admin = services.NewAdminService(api)
	a.teacher = services.NewTeacherService(api)
	return a, nil
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// Run enters the route the stored session allows and blocks in the REPL
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.println("Gradebook CLI (type 'help' for commands)")
	a.enter(ctx, router.LoginPath)
	runREPL(ctx, a, a.status, a.reader)
}

// Warn and Error implement router.Notifier.
func (a *App) Warn(msg string)  { a.println("! " + msg) }
func (a *App) Error(msg string) { a.println("x " + msg) }

// hardRedirect runs when the server rejects the session. It may be called
// from concurrent requests.
func (a *App) hardRedirect(path string) {
	a.router.HardRedirect(path)
	a.println("session ended by the server, please log in again")
}

// view drops cached page state left over from before a hard redirect.
func (a *App) view() {
	if g := a.router.Generation(); g != a.viewGen {
		a.viewGen = g
		a.resetView()
	}
}

// resetView forgets page state that belongs to the previous session.
func (a *App) resetView() {
	a.courses = nil
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

// fail reports a command error to the user and the log.
func (a *App) fail(ctx context.Context, what string, err error) error {
	a.log.Debug(ctx, "command failed", "command", what, "error", err)
	a.printf("%s failed: %v\n", what, err)
	return err
}

func (a *App) isLoggedIn() bool {
	s, err := a.store.Load(context.Background())
	return err == nil && s.IsAuthenticated()
}

func (a *App) status() string {
	s, err := a.store.Load(context.Background())
	if err != nil || !s.IsAuthenticated() {
		return a.router.Current()
	}
	return fmt.Sprintf("%s(%s) %s", s.Username, s.Role, a.router.Current())
}
