package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"sync"
	"time"

	"trotamundos/internal/access"
	"trotamundos/internal/api"
	"trotamundos/internal/config"
	"trotamundos/internal/logging"
	"trotamundos/internal/repositories/credentials"
	"trotamundos/internal/session"
	"trotamundos/internal/storage"
)

// Mode is the connectivity badge shown in the prompt, maintained by the
// background liveness watcher.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// App is the interactive shell: it owns the session store, the access
// gate and the API client, and dispatches REPL commands to them.
type App struct {
	config  *config.Config
	log     logging.Logger
	client  api.Client
	session *session.Store
	gate    *access.Gate
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer

	// mode is written by the watcher goroutine and read by the REPL loop.
	modeMu sync.Mutex
	mode   Mode
}

// NewApp wires the application: local session database, HTTP client,
// session store and access gate.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	client := api.NewHTTPClient(cfg.APIBaseURL, api.WithLogger(log))
	repo := credentials.NewSQLiteRepository(db)
	store := session.NewStore(client, client, repo, log)
	gate := access.NewGate(client, log)

	return &App{
		config:  cfg,
		log:     log,
		client:  client,
		session: store,
		gate:    gate,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the persisted session and enters the REPL. It returns when
// the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.client.Close()
		_ = a.db.Close()
	}()

	a.session.Restore(ctx)
	a.Root(ctx)
}

func (a *App) currentMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

// StartOnlineStatusWatcher probes the API root on every tick and flips
// the connectivity badge accordingly. Runs until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.client.Ping(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
