package config

import (
	"os"
	"path/filepath"
)

// userHomeDir is a test seam for os.UserHomeDir.
var userHomeDir = os.UserHomeDir

const sessionFileName = ".interntrack_session.json"

// Config holds runtime settings for the InternTrack CLI.
type Config struct {
	ServerURL   string
	SessionFile string
}

// LoadDefaults populates c with defaults. The session file lives in the
// user's home directory, or in the working directory if that is unknown.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"

	c.SessionFile = sessionFileName
	if home, err := userHomeDir(); err == nil && home != "" {
		c.SessionFile = filepath.Join(home, sessionFileName)
	}
}

// LoadConfig applies defaults, then the JSON file, then flags. Later sources
// take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := os.Args[1:]
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
