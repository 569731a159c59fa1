package config

import (
	"flag"

	"github.com/dmitrijs2005/interntrack/internal/flagx"
)

// parseFlags populates Config fields from command-line flags:
//
//	-u string   base URL of the API server
//	-f string   session file path
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-u", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "u", cfg.ServerURL, "base URL of the API server")
	fs.StringVar(&cfg.SessionFile, "f", cfg.SessionFile, "session file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
