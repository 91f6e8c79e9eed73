package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) Login(ctx context.Context) error {
	s.calls = append(s.calls, "login")
	s.loggedIn = true
	return nil
}

func (s *stubExec) Show(ctx context.Context) error {
	s.calls = append(s.calls, "show")
	return nil
}

func (s *stubExec) Tap(ctx context.Context) error {
	s.calls = append(s.calls, "tap")
	return nil
}

func (s *stubExec) Reset(ctx context.Context) error {
	s.calls = append(s.calls, "reset")
	return nil
}

func (s *stubExec) Logout(ctx context.Context) error {
	s.calls = append(s.calls, "logout")
	s.loggedIn = false
	return nil
}

// runScript feeds the given lines to the REPL and captures its output.
func runScript(t *testing.T, exec *stubExec, script string) string {
	t.Helper()

	var lines []string
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprint(a...))
		return 0, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "test" }, scanner)
	return strings.Join(lines, "\n")
}

func TestRunREPL_Dispatch(t *testing.T) {
	exec := &stubExec{loggedIn: true}

	runScript(t, exec, "show\ntap\nreset\nlogout\nexit\n")

	assert.Equal(t, []string{"show", "tap", "reset", "logout"}, exec.calls)
}

func TestRunREPL_EmptyLineTapsWhenLoggedIn(t *testing.T) {
	exec := &stubExec{loggedIn: true}

	runScript(t, exec, "\n\n\nexit\n")

	assert.Equal(t, []string{"tap", "tap", "tap"}, exec.calls)
}

func TestRunREPL_EmptyLineIgnoredWhenLoggedOut(t *testing.T) {
	exec := &stubExec{loggedIn: false}

	runScript(t, exec, "\n\nexit\n")

	assert.Empty(t, exec.calls)
}

func TestRunREPL_RequiresLogin(t *testing.T) {
	exec := &stubExec{loggedIn: false}

	out := runScript(t, exec, "tap\nshow\nexit\n")

	assert.Empty(t, exec.calls)
	assert.Contains(t, out, "Please login first")
}

func TestRunREPL_LoginOnlyOnce(t *testing.T) {
	exec := &stubExec{loggedIn: false}

	out := runScript(t, exec, "login\nlogin\nexit\n")

	assert.Equal(t, []string{"login"}, exec.calls)
	assert.Contains(t, out, "Already logged in")
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	exec := &stubExec{loggedIn: true}

	out := runScript(t, exec, "frobnicate\nexit\n")

	assert.Empty(t, exec.calls)
	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestRunREPL_QuitAlias(t *testing.T) {
	exec := &stubExec{loggedIn: true}

	runScript(t, exec, "quit\ntap\n")

	assert.Empty(t, exec.calls, "nothing after quit runs")
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	exec := &stubExec{loggedIn: true}

	// Script without an exit command; the scanner EOF ends the loop
	runScript(t, exec, "tap\n")

	assert.Equal(t, []string{"tap"}, exec.calls)
}
