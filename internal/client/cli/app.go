// Package cli implements the interactive terminal views of the counter client:
// a login view and a dashboard over the optimistic local state.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"

	"counter_backend/internal/client/api"
	"counter_backend/internal/client/state"
)

// App wires the state manager and the HTTP invoker to the terminal views.
type App struct {
	manager *state.Manager
	server  *api.Client
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp creates the terminal application.
func NewApp(manager *state.Manager, server *api.Client, in io.Reader, out io.Writer) *App {
	return &App{
		manager: manager,
		server:  server,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

func (a *App) isLoggedIn() bool {
	return a.manager.LoggedIn()
}

// Login implements the login view: it collects email and password, submits
// them, and stores the returned identity locally on success. All failures
// (missing fields, bad credentials, network errors) surface as a single
// undifferentiated error message.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	resp, err := a.server.Login(ctx, email, password)
	if err != nil {
		log.Printf("Login failed: %v", err)
		fmt.Fprintln(a.out, "Login failed")
		return nil
	}
	if err := a.manager.SetUser(resp.UserID, resp.Token); err != nil {
		return err
	}

	// ダッシュボード読み込み時のリコンシリエーション: ローカルとサーバーの大きい方を採用
	if err := a.manager.SyncOnLoad(ctx); err != nil {
		log.Printf("Error loading counter: %v", err)
	}
	fmt.Fprintln(a.out, "Login successful")
	a.Show(ctx)
	return nil
}

// Show implements the dashboard view: the local count, the completed-batch
// statistic and the progress within the current batch.
func (a *App) Show(_ context.Context) error {
	fmt.Fprintf(a.out, "Today's count:   %d\n", a.manager.Count())
	fmt.Fprintf(a.out, "Synced sets of %d: %d\n", state.BatchSize, a.manager.Batches())
	fmt.Fprintf(a.out, "Progress:        %d/%d\n", a.manager.Progress(), state.BatchSize)
	return nil
}

// Tap applies one optimistic increment. When the tap completes a batch, the
// single resulting server sync is reported; a failing sync is logged and the
// local count stands.
func (a *App) Tap(ctx context.Context) error {
	count, synced, err := a.manager.Increment(ctx)
	if err != nil {
		log.Printf("Error syncing: %v", err)
	}
	fmt.Fprintf(a.out, "Count: %d\n", count)
	if synced {
		fmt.Fprintf(a.out, "Synced %d counts to server\n", state.BatchSize)
	}
	return nil
}

// Reset zeroes the counter after an explicit confirmation step.
// The local zeroing is immediate; the server call is fire-and-forget.
func (a *App) Reset(ctx context.Context) error {
	ok, err := Confirm(a.reader, "Reset the counter to 0?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.manager.Reset(ctx); err != nil {
		log.Printf("Error resetting counter: %v", err)
	}
	fmt.Fprintln(a.out, "Counter reset")
	return nil
}

// Logout notifies the server best-effort, then unconditionally clears the
// local state and returns to the login view.
func (a *App) Logout(ctx context.Context) error {
	if err := a.manager.Logout(ctx); err != nil {
		log.Printf("Logout call failed (local state cleared anyway): %v", err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Run starts the REPL until EOF or an exit command.
func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.statusLine, bufio.NewScanner(a.reader))
}

func (a *App) statusLine() string {
	if !a.isLoggedIn() {
		return "logged out"
	}
	return fmt.Sprintf("user %d, count %d", a.manager.UserID(), a.manager.Count())
}
