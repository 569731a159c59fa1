package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/interntrack/internal/client/client"
	"github.com/dmitrijs2005/interntrack/internal/client/config"
	"github.com/dmitrijs2005/interntrack/internal/client/services"
	"github.com/dmitrijs2005/interntrack/internal/client/session"
)

const pingTimeout = 3 * time.Second

type App struct {
	config      *config.Config
	auth        services.AuthService
	internships services.InternshipService
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL)
	if err != nil {
		return nil, err
	}

	as := services.NewAuthService(apiClient, session.NewFileStore(c.SessionFile))
	is := services.NewInternshipService(apiClient, as)

	return newApp(c, as, is, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, as services.AuthService, is services.InternshipService, in io.Reader, out io.Writer) *App {
	return &App{config: c, auth: as, internships: is, reader: bufio.NewReader(in), out: out}
}

// Run restores a saved session, reports server reachability and blocks in
// the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "InternTrack CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)

	if s, err := a.auth.Restore(); err != nil {
		fmt.Fprintln(a.out, "Saved session ignored:", err)
	} else if s != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", s.Username)
	}

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	if err := a.auth.Ping(pctx); err != nil {
		fmt.Fprintln(a.out, "Warning:", err)
	}
	cancel()

	runREPL(ctx, a, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.auth.Current() != nil
}
