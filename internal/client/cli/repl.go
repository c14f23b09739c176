package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	Sync(ctx context.Context) error
	Budget(ctx context.Context) error
	SetBudget(ctx context.Context, args []string) error
	Summary(ctx context.Context, args []string) error
	Categories(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: signup, login, categories, help, exit"
	helpLoggedIn  = "Available commands: add, list, delete, clear, budget, setbudget, summary, categories, sync, profile, logout, help, exit"
)

// needsLogin lists commands that are refused until the user logs in.
var needsLogin = map[string]bool{
	"add": true, "list": true, "l": true, "delete": true, "clear": true,
	"budget": true, "setbudget": true, "summary": true, "sync": true,
	"profile": true, "logout": true,
}

// runREPL reads commands line by line and dispatches them to a. It returns on
// EOF, on "exit"/"quit", or when ctx is cancelled. Handler errors are printed
// and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "finkeeper %s> ", statusFn())

		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if needsLogin[cmd] && !a.isLoggedIn() {
			fmt.Fprintln(out, "Please log in first")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}
		case "signup", "register":
			cmdErr = a.SignUp(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "add":
			cmdErr = a.Add(ctx, args)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "delete", "rm":
			cmdErr = a.Delete(ctx, args)
		case "clear":
			cmdErr = a.Clear(ctx)
		case "sync":
			cmdErr = a.Sync(ctx)
		case "budget":
			cmdErr = a.Budget(ctx)
		case "setbudget":
			cmdErr = a.SetBudget(ctx, args)
		case "summary":
			cmdErr = a.Summary(ctx, args)
		case "categories":
			cmdErr = a.Categories(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", cmdErr)
		}
	}
}
