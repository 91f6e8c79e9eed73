package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Show(ctx context.Context) error
	Tap(ctx context.Context) error
	Reset(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the counter CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands while logged out: help, login, exit.
// Commands while logged in: help, show, tap, reset, logout, exit.
// An empty line while logged in counts as a tap, so the counter can be
// driven by repeatedly pressing Enter.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("counter> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if a.isLoggedIn() {
				_ = a.Tap(ctx)
			}
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: show, tap (or press Enter), reset, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}
		case "login":
			if a.isLoggedIn() {
				printlnFn("Already logged in")
				continue
			}
			_ = a.Login(ctx)
		case "show":
			if !requireLogin(a) {
				continue
			}
			_ = a.Show(ctx)
		case "tap":
			if !requireLogin(a) {
				continue
			}
			_ = a.Tap(ctx)
		case "reset":
			if !requireLogin(a) {
				continue
			}
			_ = a.Reset(ctx)
		case "logout":
			if !requireLogin(a) {
				continue
			}
			_ = a.Logout(ctx)
		case "exit", "quit":
			return
		default:
			printlnFn(fmt.Sprintf("Unknown command: %s (try help)", cmd))
		}
	}
}

func requireLogin(a execIface) bool {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return false
	}
	return true
}
