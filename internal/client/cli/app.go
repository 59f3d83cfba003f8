package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"time"

	"github.com/coursecopilot/copilot/internal/client/api"
	"github.com/coursecopilot/copilot/internal/client/config"
	"github.com/coursecopilot/copilot/internal/client/repositories/session"
	"github.com/coursecopilot/copilot/internal/client/services"
	"github.com/coursecopilot/copilot/internal/client/storage"
	"github.com/coursecopilot/copilot/internal/client/watcher"
	"github.com/coursecopilot/copilot/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config    *config.Config
	client    api.Client
	resources services.ResourceService
	repos     *storage.Repositories
	watcher   *watcher.DropWatcher
	logger    logging.Logger

	userName string
	courseID string
	threadID string
	loggedIn bool
	Mode     Mode
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	repos, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL)
	logger := logging.NewDefault()

	rs := services.NewResourceService(apiClient, repos.DB, repos.Mirror, repos.Pending, logger)

	app := &App{
		config:    c,
		client:    apiClient,
		resources: rs,
		repos:     repos,
		logger:    logger,
		reader:    bufio.NewReader(os.Stdin),
	}
	app.restoreSession(ctx)
	return app, nil
}

// restoreSession picks the bearer token and the active course back up from
// the previous run.
func (a *App) restoreSession(ctx context.Context) {
	if token, err := a.repos.Session.Get(ctx, session.KeyToken); err == nil && token != nil {
		a.client.SetToken(string(token))
		a.loggedIn = true
	}
	if course, err := a.repos.Session.Get(ctx, session.KeyActiveCourse); err == nil && course != nil {
		a.courseID = string(course)
	}
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.watcher != nil {
			_ = a.watcher.Stop()
		}
		_ = a.client.Close()
		_ = a.repos.Close()
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

// StartOnlineStatusWatcher probes the server on the configured interval and
// flips the connectivity mode. In offline mode the cache serves reads alone;
// commits wait for the next online window.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.client.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
