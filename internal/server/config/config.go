// Package config handles configuration for the server component.
//
// Values are layered: built-in defaults, then an optional JSON file given
// with -c/-config, then environment variables (a .env file in the working
// directory is loaded first when present), then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime settings for the InternTrack server.
type Config struct {
	Address            string
	DatabaseDriver     string
	DatabaseDSN        string
	SecretKey          string
	TokenValidity      time.Duration
	BcryptCost         int
	CORSAllowedOrigins []string
	LogLevel           string
	LogFormat          string
	// InsecureDev allows starting without a secret key. A random one is
	// generated per process, so tokens do not survive a restart.
	InsecureDev     bool
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Address = ":5000"
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "data.db"
	c.SecretKey = ""
	c.TokenValidity = 7 * 24 * time.Hour
	c.BcryptCost = bcrypt.DefaultCost
	c.CORSAllowedOrigins = []string{"*"}
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.InsecureDev = false
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and os.Args, in that order. It panics on unreadable or malformed input.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := os.Args[1:]
	parseJson(cfg, args)
	loadDotEnv(".env")
	parseEnv(cfg)
	parseFlags(cfg, args)

	return cfg
}

// Validate reports the first setting that would keep the server from
// starting safely.
func (c *Config) Validate() error {
	if c.SecretKey == "" && !c.InsecureDev {
		return errors.New("secret key is required (set JWT_SECRET, or -insecure-dev for local use)")
	}
	if c.DatabaseDriver != DriverSQLite && c.DatabaseDriver != DriverPostgres {
		return fmt.Errorf("unknown database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("database DSN is required")
	}
	if c.TokenValidity <= 0 {
		return errors.New("token validity must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	return nil
}
