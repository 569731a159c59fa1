// Package rest serves the JSON HTTP API: signup and login, owner-scoped
// internship CRUD and a health probe.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/interntrack/internal/logging"
	"github.com/dmitrijs2005/interntrack/internal/server/auth"
	"github.com/dmitrijs2005/interntrack/internal/server/models"
	"github.com/dmitrijs2005/interntrack/internal/server/services"
)

type UserService interface {
	Signup(ctx context.Context, username, password string) (*services.AuthResult, error)
	Login(ctx context.Context, username, password string) (*services.AuthResult, error)
}

type InternshipService interface {
	List(ctx context.Context, userID int64, filter models.InternshipFilter) ([]*models.Internship, error)
	Get(ctx context.Context, userID, id int64) (*models.Internship, error)
	Create(ctx context.Context, userID int64, in models.InternshipInput) (*models.Internship, error)
	Update(ctx context.Context, userID, id int64, in models.InternshipInput) error
	Delete(ctx context.Context, userID, id int64) error
}

type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options tune the listener and the middleware chain. Zero durations fall
// back to the defaults below.
type Options struct {
	Address         string
	AllowedOrigins  []string
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

const (
	DefaultMaxBodyBytes    int64 = 1 << 20
	defaultReadTimeout           = 10 * time.Second
	defaultWriteTimeout          = 10 * time.Second
	defaultIdleTimeout           = 60 * time.Second
	defaultShutdownTimeout       = 10 * time.Second
)

type Server struct {
	opts        Options
	users       UserService
	internships InternshipService
	tokens      TokenVerifier
	health      Pinger
	logger      logging.Logger
}

func NewServer(opts Options, l logging.Logger, us UserService, is InternshipService, tv TokenVerifier, hp Pinger) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = defaultReadTimeout
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	return &Server{
		opts:        opts,
		users:       us,
		internships: is,
		tokens:      tv,
		health:      hp,
		logger:      l.With("module", "http_server"),
	}
}

// Run listens on the configured address until ctx is cancelled, then drains
// in-flight requests for at most ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}
