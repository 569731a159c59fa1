// Package cli provides the interactive InternTrack command-line client.
//
// It wires configuration, the HTTP API client, the persisted session and a
// REPL. A session saved by a previous run is restored at start; a 401 from
// the server clears it.
//
// Commands:
//
//	signup                  create an account and log in
//	login                   log in
//	logout                  forget the saved session
//	list [status] [query]   list applications, newest first
//	add                     record a new application
//	edit <id>               change an application
//	delete <id>             remove an application
//	help                    show available commands
//	exit | quit             leave the program
package cli
