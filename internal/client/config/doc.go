// Package config loads runtime configuration for the InternTrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the API server
//	-f string   path of the session file
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "session_file": "/home/me/.interntrack_session.json"
//	}
package config
