package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/interntrack/internal/timex"
	"github.com/joho/godotenv"
)

// loadDotEnv copies variables from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("load %s: %w", path, err))
	}
}

// parseEnv overlays values from environment variables.
//
//	PORT                  port only, listens on all interfaces
//	ADDRESS               full listen address, wins over PORT
//	DB_DRIVER             sqlite or postgres
//	DB_FILE               SQLite database file
//	DATABASE_DSN          any DSN, wins over DB_FILE
//	JWT_SECRET            token signing secret
//	JWT_EXPIRES_IN        token lifetime, e.g. "7d"
//	BCRYPT_COST           password hashing cost
//	CORS_ALLOWED_ORIGINS  comma-separated origins or "*"
//	LOG_LEVEL, LOG_FORMAT
//	INSECURE_DEV          true/false
//
// It panics on values that cannot be parsed.
func parseEnv(config *Config) {
	if v, ok := lookup("PORT"); ok {
		config.Address = ":" + v
	}
	if v, ok := lookup("ADDRESS"); ok {
		config.Address = v
	}
	if v, ok := lookup("DB_DRIVER"); ok {
		config.DatabaseDriver = strings.ToLower(v)
	}
	if v, ok := lookup("DB_FILE"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := lookup("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := lookup("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := lookup("JWT_EXPIRES_IN"); ok {
		d, err := timex.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("JWT_EXPIRES_IN: %w", err))
		}
		config.TokenValidity = d
	}
	if v, ok := lookup("BCRYPT_COST"); ok {
		cost, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("BCRYPT_COST: %w", err))
		}
		config.BcryptCost = cost
	}
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok {
		config.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		config.LogLevel = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		config.LogFormat = v
	}
	if v, ok := lookup("INSECURE_DEV"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("INSECURE_DEV: %w", err))
		}
		config.InsecureDev = b
	}
}

// lookup treats blank variables as unset.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
