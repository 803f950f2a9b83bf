package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tudo/internal/config"
	"tudo/internal/exitcode"
	"tudo/internal/output"
	"tudo/internal/provider"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string        { return "lists" }
func (c *ListsCmd) Aliases() []string   { return nil }
func (c *ListsCmd) Synopsis() string    { return "Print all tasklists with open counts" }
func (c *ListsCmd) Usage() string       { return "tudo lists [common flags]" }
func (c *ListsCmd) NeedsProvider() bool { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, p provider.Provider, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	lists := p.Tasklists()
	if len(lists) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasklists")
		}
		return exitcode.Success
	}

	for _, list := range lists {
		output.FormatTasklist(out, list)
	}
	return exitcode.Success
}
