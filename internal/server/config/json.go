package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/interntrack/internal/flagx"
	"github.com/dmitrijs2005/interntrack/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations
// accept strings such as "7d" or "10s" as well as integer nanoseconds.
// Pointer fields distinguish "absent" from the zero value.
type JsonConfig struct {
	Address            string          `json:"address"`
	DatabaseDriver     string          `json:"database_driver"`
	DatabaseDSN        string          `json:"database_dsn"`
	SecretKey          string          `json:"secret_key"`
	TokenValidity      *timex.Duration `json:"token_validity_duration"`
	BcryptCost         *int            `json:"bcrypt_cost"`
	CORSAllowedOrigins []string        `json:"cors_allowed_origins"`
	LogLevel           string          `json:"log_level"`
	LogFormat          string          `json:"log_format"`
	InsecureDev        *bool           `json:"insecure_dev"`
	ShutdownTimeout    *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the file named by -c/-config. Fields missing
// from the file keep their current value. It panics if the file cannot be
// read or parsed.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.ConfigFile(args)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.Address, c.Address)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)

	if c.TokenValidity != nil {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.InsecureDev != nil {
		config.InsecureDev = *c.InsecureDev
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
