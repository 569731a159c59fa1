// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/interntrack/internal/logging"
	"github.com/dmitrijs2005/interntrack/internal/server/auth"
	"github.com/dmitrijs2005/interntrack/internal/server/config"
	"github.com/dmitrijs2005/interntrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/interntrack/internal/server/rest"
	"github.com/dmitrijs2005/interntrack/internal/server/services"
)

// logOutput is where the application logger writes.
var logOutput io.Writer = os.Stdout

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *rest.Server
}

// NewApp validates c, opens storage, applies migrations and builds the HTTP
// server. The caller owns the returned App and must call Run to release it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.New(logOutput, c.LogLevel, c.LogFormat)

	secret := c.SecretKey
	if secret == "" {
		s, err := auth.RandomSecret()
		if err != nil {
			return nil, fmt.Errorf("secret init error: %w", err)
		}
		secret = s
		logger.Warn(ctx, "INSECURE: no secret key configured, using a random one; tokens will not survive a restart")
	}

	tokens, err := auth.NewTokenManager([]byte(secret), c.TokenValidity)
	if err != nil {
		return nil, fmt.Errorf("token manager init error: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("password hasher init error: %w", err)
	}

	backend := repomanager.BackendSQLite
	if c.DatabaseDriver == config.DriverPostgres {
		backend = repomanager.BackendPostgres
	}

	rm, err := repomanager.New(ctx, backend, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, err
	}

	us := services.NewUserService(rm.Users(), tokens, hasher)
	is := services.NewInternshipService(rm.Internships())

	srv := rest.NewServer(rest.Options{
		Address:         c.Address,
		AllowedOrigins:  c.CORSAllowedOrigins,
		ShutdownTimeout: c.ShutdownTimeout,
	}, logger, us, is, tokens, rm)

	logger.Info(ctx, "Storage ready", "driver", c.DatabaseDriver)

	return &App{config: c, logger: logger, repos: rm, server: srv}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
	return err
}

// Run serves requests until ctx is cancelled or a termination signal
// arrives, then closes storage.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup
	var serveErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		serveErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	app.logger.Info(ctx, "App stopped")
	return serveErr
}
