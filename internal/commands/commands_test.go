package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tudo/internal/commands"
	"tudo/internal/config"
	"tudo/internal/exitcode"
	"tudo/internal/provider"
	"tudo/internal/testutil"
)

// runCommand is a helper to run a command with a loaded FakeProvider.
func runCommand(t *testing.T, cmd commands.Command, p *testutil.FakeProvider, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config.New: %v", err)
	}
	cfg.Quiet = quiet

	ctx := context.Background()
	var prov provider.Provider
	if p != nil {
		if err := p.Load(ctx); err != nil {
			t.Fatalf("Load: %v", err)
		}
		prov = p
	}
	code = cmd.Run(ctx, cfg, prov, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "tudo 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "tudo tui", "tudo lists", "tudo login", "tudo logout", "Toggle done", "--debug"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"tui", "run", "lists", "login", "logout", "help", "version"} {
		if _, ok := commands.DefaultRegistry.Find(name); !ok {
			t.Errorf("command %q not registered", name)
		}
	}
	if cmd, _ := commands.DefaultRegistry.Find("run"); cmd.Name() != "tui" {
		t.Errorf("run should alias tui, got %s", cmd.Name())
	}
	if _, ok := commands.DefaultRegistry.Find("add"); ok {
		t.Error("add should not be registered")
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.TUICmd{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(&commands.TUICmd{}); err == nil {
		t.Error("expected error registering tui twice")
	}
}

func TestListsCommand(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.AddList("inbox", "Inbox")
	p.AddList("work", "Work")
	p.AddTask("inbox", "t1", "Buy milk")
	p.AddTaskWithStatus("inbox", "t2", "Buy eggs", provider.StatusDone)

	cmd := &commands.ListsCmd{}
	stdout, stderr, code := runCommand(t, cmd, p, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	want := "Inbox  (1/2 open)\nWork  (0/0 open)\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
}

func TestListsCommand_NoTasklists(t *testing.T) {
	cmd := &commands.ListsCmd{}

	stdout, _, code := runCommand(t, cmd, testutil.NewFakeProvider(), nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasklists\n" {
		t.Errorf("expected 'no tasklists', got %q", stdout)
	}

	stdout, _, _ = runCommand(t, cmd, testutil.NewFakeProvider(), nil, true)
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestListsCommand_ExtraArgument(t *testing.T) {
	cmd := &commands.ListsCmd{}

	_, stderr, code := runCommand(t, cmd, testutil.NewFakeProvider(), []string{"Inbox"}, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "unexpected argument") {
		t.Errorf("expected argument error, got %q", stderr)
	}
}

func TestTUICommand_TogglesSelectedTask(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.AddList("inbox", "Inbox")
	p.AddTask("inbox", "t1", "Buy milk")

	var view string
	cmd := &commands.TUICmd{
		RunProgram: func(ctx context.Context, m tea.Model) error {
			for _, key := range []string{"j", "x", "q"} {
				var c tea.Cmd
				m, c = m.Update(runes(key))
				if key == "q" && c == nil {
					t.Error("q should return a quit command")
				}
			}
			view = m.View()
			return nil
		},
	}

	_, stderr, code := runCommand(t, cmd, p, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if len(p.Updates) != 1 || p.Updates[0].Status != provider.StatusDone {
		t.Fatalf("expected one update to done, got %+v", p.Updates)
	}
	task, _ := p.Task("inbox", "t1")
	if task.Status != provider.StatusDone {
		t.Errorf("expected reloaded task to be done, got %s", task.Status)
	}
	if !strings.Contains(view, "Buy milk") {
		t.Errorf("view should show the task, got:\n%s", view)
	}
}

func TestTUICommand_ProgramErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"killed", tea.ErrProgramKilled, exitcode.Success},
		{"failed", errors.New("no tty"), exitcode.BackendError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &commands.TUICmd{
				RunProgram: func(ctx context.Context, m tea.Model) error { return tt.err },
			}
			_, _, code := runCommand(t, cmd, testutil.NewFakeProvider(), nil, false)
			if code != tt.want {
				t.Errorf("expected exit code %d, got %d", tt.want, code)
			}
		})
	}
}

func TestTUICommand_ExtraArgument(t *testing.T) {
	cmd := &commands.TUICmd{
		RunProgram: func(ctx context.Context, m tea.Model) error {
			t.Error("program should not start")
			return nil
		},
	}
	_, _, code := runCommand(t, cmd, testutil.NewFakeProvider(), []string{"extra"}, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
}
