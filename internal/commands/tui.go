package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"tudo/internal/app"
	"tudo/internal/config"
	"tudo/internal/exitcode"
	"tudo/internal/provider"
	"tudo/internal/tui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd implements the interactive browser. It is the default command.
type TUICmd struct {
	// RunProgram runs the model to completion. Tests replace it to drive
	// the model without a terminal.
	RunProgram func(ctx context.Context, m tea.Model) error
}

func (c *TUICmd) Name() string        { return "tui" }
func (c *TUICmd) Aliases() []string   { return []string{"run"} }
func (c *TUICmd) Synopsis() string    { return "Browse tasklists and toggle tasks" }
func (c *TUICmd) Usage() string       { return "tudo tui [common flags]" }
func (c *TUICmd) NeedsProvider() bool { return true }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, p provider.Provider, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	state := app.New(p)
	model := tui.New(ctx, state, tui.WithTickRate(cfg.Settings.TickRate))

	run := c.RunProgram
	if run == nil {
		run = runProgram
	}

	log.Printf("tui: starting with %d tasklists", len(p.Tasklists()))
	if err := run(ctx, model); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	log.Printf("tui: exited")
	return exitcode.Success
}

func runProgram(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
