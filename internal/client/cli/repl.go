package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const prompt = "it> "

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL reads commands from in until EOF, "exit" or "quit". A failing
// command prints its error and the loop goes on.
func runREPL(ctx context.Context, a execIface, in *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprint(out, prompt)
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printHelp(out, a.isLoggedIn())
		case "signup":
			cmdErr = a.Signup(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "l", "list":
			cmdErr = a.List(ctx, args)
		case "add":
			cmdErr = a.Add(ctx)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "delete", "rm":
			cmdErr = a.Delete(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd, "(type 'help')")
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", cmdErr)
		}
	}
}

func printHelp(out io.Writer, loggedIn bool) {
	if !loggedIn {
		fmt.Fprintln(out, "Available commands: signup, login, help, exit")
		return
	}
	fmt.Fprintln(out, "Available commands:")
	fmt.Fprintln(out, "  list [status] [query]  applied|interviewing|offer|rejected|all, then search text")
	fmt.Fprintln(out, "  add                    record a new application")
	fmt.Fprintln(out, "  edit <id>              change an application")
	fmt.Fprintln(out, "  delete <id>            remove an application")
	fmt.Fprintln(out, "  logout, help, exit")
}
