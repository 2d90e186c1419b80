package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/runnio/internal/client/client"
	"github.com/dmitrijs2005/runnio/internal/client/config"
	"github.com/dmitrijs2005/runnio/internal/client/guard"
	"github.com/dmitrijs2005/runnio/internal/client/repositories"
	"github.com/dmitrijs2005/runnio/internal/client/services"
	"github.com/dmitrijs2005/runnio/internal/client/session"
	"github.com/dmitrijs2005/runnio/internal/filex"
	"github.com/dmitrijs2005/runnio/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config *config.Config
	log    logging.Logger

	api    pinger
	auth   services.AuthService
	events services.EventService
	admin  services.AdminService
	router *guard.Router
	cmds   map[string]*command
	order  []*command

	reader *bufio.Reader
	out    io.Writer

	closers []io.Closer

	mu   sync.Mutex
	mode Mode
	user string
}

// NewApp wires the local session database, the API client and the services.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dir

	db, err := repositories.InitDatabase(ctx, cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	burst := int(math.Max(1, math.Ceil(cfg.RequestsPerSecond)))
	api, err := client.NewHTTPClient(cfg.ServerURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRateLimit(cfg.RequestsPerSecond, burst),
		client.WithLogger(log.With("component", "api")),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewStore(db, log.With("component", "session"))
	auth := services.NewAuthService(api, store, log.With("component", "auth"))
	events := services.NewEventService(api, log.With("component", "events"))
	admin := services.NewAdminService(api, log.With("component", "admin"))

	app, err := newApp(cfg, log, api, auth, events, admin, os.Stdin, os.Stdout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.closers = []io.Closer{api, db}
	return app, nil
}

// newApp assembles an App from ready services; tests inject fakes here.
func newApp(cfg *config.Config, log logging.Logger, api pinger, auth services.AuthService,
	events services.EventService, admin services.AdminService, in io.Reader, out io.Writer) (*App, error) {
	a := &App{
		config: cfg,
		log:    log,
		api:    api,
		auth:   auth,
		events: events,
		admin:  admin,
		router: guard.NewRouter(),
		reader: bufio.NewReader(in),
		out:    out,
	}
	if err := a.registerCommands(); err != nil {
		return nil, err
	}
	auth.Subscribe(a.onAuthChange)
	return a, nil
}

// Run restores the saved session, starts the connectivity watcher and
// blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.auth.Restore(ctx)
	a.checkOnline(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	if st := a.auth.State(); st.IsAuthenticated() {
		a.info("Welcome back, %s.", st.Identity.Name)
		go a.refreshSession(ctx)
	}
	a.info("Runnio CLI (type 'help' for commands)")

	runREPL(ctx, a)
}

func (a *App) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

// refreshSession re-reads the identity so a role changed or a token revoked
// server-side is picked up after a restart.
func (a *App) refreshSession(ctx context.Context) {
	res, err := a.auth.Refresh(ctx)
	if err != nil {
		a.log.Error(ctx, "refresh session", "error", err)
		return
	}
	if !res.Success {
		a.log.Info(ctx, "session not refreshed", "reason", res.Message)
	}
}

func (a *App) onAuthChange(st services.AuthState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if st.Identity != nil {
		a.user = st.Identity.Name
	} else {
		a.user = ""
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			a.setMode(ModeOffline)
		}
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the API every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// status renders the prompt suffix, e.g. "(John online)".
func (a *App) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.user
	if a.mode != "" {
		if s != "" {
			s += " "
		}
		s += string(a.mode)
	}
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

func (a *App) snapshot() guard.Snapshot {
	st := a.auth.State()
	return guard.SnapshotOf(st.Identity, st.Loading)
}
