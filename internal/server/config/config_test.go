package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "ADDRESS", "DB_DRIVER", "DB_FILE", "DATABASE_DSN", "JWT_SECRET",
	"JWT_EXPIRES_IN", "BCRYPT_COST", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
	"LOG_FORMAT", "INSECURE_DEV",
}

// clearEnv blanks every variable parseEnv reads; blank means unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		Address:            ":5000",
		DatabaseDriver:     "sqlite",
		DatabaseDSN:        "data.db",
		TokenValidity:      7 * 24 * time.Hour,
		BcryptCost:         10,
		CORSAllowedOrigins: []string{"*"},
		LogLevel:           "info",
		LogFormat:          "json",
		ShutdownTimeout:    10 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"address":                 "127.0.0.1:8080",
		"database_driver":         "postgres",
		"database_dsn":            "postgres://localhost/it",
		"secret_key":              "from-json",
		"token_validity_duration": "1d12h",
		"bcrypt_cost":             12,
		"cors_allowed_origins":    []string{"https://app.example"},
		"log_format":              "text",
		"insecure_dev":            true,
		"shutdown_timeout":        "3s",
	})

	cfg := defaults()
	parseJson(cfg, []string{"-config", path})

	want := &Config{
		Address:            "127.0.0.1:8080",
		DatabaseDriver:     "postgres",
		DatabaseDSN:        "postgres://localhost/it",
		SecretKey:          "from-json",
		TokenValidity:      36 * time.Hour,
		BcryptCost:         12,
		CORSAllowedOrigins: []string{"https://app.example"},
		LogLevel:           "info",
		LogFormat:          "text",
		InsecureDev:        true,
		ShutdownTimeout:    3 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseJson_PartialKeepsDefaults(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"secret_key": "s"})

	cfg := defaults()
	parseJson(cfg, []string{"-c", path})

	want := defaults()
	want.SecretKey = "s"
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseJson_NoFile(t *testing.T) {
	cfg := defaults()
	parseJson(cfg, []string{"-a", ":1"})
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseJson_Panics(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

	require.Panics(t, func() { parseJson(defaults(), []string{"-config", bad}) })
	require.Panics(t, func() { parseJson(defaults(), []string{"-config", filepath.Join(t.TempDir(), "missing.json")}) })
}

func TestParseEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_FILE", "ignored.db")
	t.Setenv("DATABASE_DSN", "postgres://db/it")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRES_IN", "7d")
	t.Setenv("BCRYPT_COST", "11")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("INSECURE_DEV", "true")

	cfg := defaults()
	parseEnv(cfg)

	want := &Config{
		Address:            ":8081",
		DatabaseDriver:     "postgres",
		DatabaseDSN:        "postgres://db/it",
		SecretKey:          "env-secret",
		TokenValidity:      7 * 24 * time.Hour,
		BcryptCost:         11,
		CORSAllowedOrigins: []string{"https://a.example", "https://b.example"},
		LogLevel:           "debug",
		LogFormat:          "text",
		InsecureDev:        true,
		ShutdownTimeout:    10 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseEnv_AddressWinsOverPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("ADDRESS", "127.0.0.1:9000")
	t.Setenv("DB_FILE", "tracker.db")

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "127.0.0.1:9000", cfg.Address)
	assert.Equal(t, "tracker.db", cfg.DatabaseDSN)
}

func TestParseEnv_Panics(t *testing.T) {
	for key, value := range map[string]string{
		"JWT_EXPIRES_IN": "forever",
		"BCRYPT_COST":    "ten",
		"INSECURE_DEV":   "maybe",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			require.Panics(t, func() { parseEnv(defaults()) })
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=dotenv-secret\nLOG_LEVEL=warn\n"), 0o600))
	t.Setenv("LOG_LEVEL", "error")
	// godotenv does not override, so blank the var to let the file fill it.
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	loadDotEnv(path)

	cfg := defaults()
	parseEnv(cfg)
	assert.Equal(t, "dotenv-secret", cfg.SecretKey)
	assert.Equal(t, "error", cfg.LogLevel, "existing variables win")

	require.NotPanics(t, func() { loadDotEnv(filepath.Join(t.TempDir(), "missing.env")) })
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-driver", "postgres", "-d", "db", "-s", "secret",
				"-t", "12h", "-cost", "4", "-log-level", "debug", "-insecure-dev",
				"-config", "ignored.json", "-unknown", "x",
			},
			expected: func() *Config {
				c := defaults()
				c.Address = "127.0.0.1:9090"
				c.DatabaseDriver = "postgres"
				c.DatabaseDSN = "db"
				c.SecretKey = "secret"
				c.TokenValidity = 12 * time.Hour
				c.BcryptCost = 4
				c.LogLevel = "debug"
				c.InsecureDev = true
				return c
			}(),
		},
		{name: "no flags", args: nil, expected: defaults()},
		{name: "day duration", args: []string{"-t", "2d"}, expected: func() *Config {
			c := defaults()
			c.TokenValidity = 48 * time.Hour
			return c
		}()},
		{name: "bad duration", args: []string{"-t", "soon"}, expectPanic: true},
		{name: "bad cost", args: []string{"-cost", "high"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeTempJSON(t, map[string]any{"address": ":7000", "secret_key": "json", "database_dsn": "json.db"})
	t.Setenv("JWT_SECRET", "env")
	t.Setenv("DB_FILE", "env.db")

	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"server", "-c", path, "-d", "flag.db"}

	cfg := LoadConfig()

	assert.Equal(t, ":7000", cfg.Address, "json over defaults")
	assert.Equal(t, "env", cfg.SecretKey, "env over json")
	assert.Equal(t, "flag.db", cfg.DatabaseDSN, "flags over env")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := defaults()
		c.SecretKey = "s"
		return c
	}
	require.NoError(t, valid().Validate())

	dev := defaults()
	dev.InsecureDev = true
	require.NoError(t, dev.Validate())

	tests := map[string]func(c *Config){
		"no secret":        func(c *Config) { c.SecretKey = "" },
		"unknown driver":   func(c *Config) { c.DatabaseDriver = "mysql" },
		"empty dsn":        func(c *Config) { c.DatabaseDSN = "" },
		"zero validity":    func(c *Config) { c.TokenValidity = 0 },
		"cost too low":     func(c *Config) { c.BcryptCost = 3 },
		"cost too high":    func(c *Config) { c.BcryptCost = 32 },
		"no shutdown time": func(c *Config) { c.ShutdownTimeout = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
