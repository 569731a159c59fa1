package config

import (
	"flag"

	"github.com/dmitrijs2005/interntrack/internal/flagx"
	"github.com/dmitrijs2005/interntrack/internal/timex"
)

// parseFlags populates Config from command-line flags.
//
//	-a string          listen address (e.g. ":5000")
//	-driver string     sqlite or postgres
//	-d string          database DSN or SQLite file
//	-s string          JWT signing secret
//	-t string          token lifetime, e.g. "7d" or "12h"
//	-cost int          bcrypt cost
//	-log-level string  debug, info, warn or error
//	-insecure-dev      allow an ephemeral secret
//
// Unknown flags are filtered out first so that -c/-config and flags meant
// for other components do not break parsing. It panics on bad values.
func parseFlags(config *Config, args []string) {
	args = flagx.Filter(args,
		[]string{"-a", "-driver", "-d", "-s", "-t", "-cost", "-log-level"},
		[]string{"-insecure-dev"},
	)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Address, "a", config.Address, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "storage driver: sqlite or postgres")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	validity := fs.String("t", "", "token validity duration (e.g. 7d, 12h)")
	fs.IntVar(&config.BcryptCost, "cost", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
	fs.BoolVar(&config.InsecureDev, "insecure-dev", config.InsecureDev, "run with an ephemeral secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *validity != "" {
		d, err := timex.ParseDuration(*validity)
		if err != nil {
			panic(err)
		}
		config.TokenValidity = d
	}
}
