package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tudo/internal/config"
	"tudo/internal/exitcode"
	"tudo/internal/provider"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string        { return "help" }
func (c *HelpCmd) Aliases() []string   { return nil }
func (c *HelpCmd) Synopsis() string    { return "Print usage" }
func (c *HelpCmd) Usage() string       { return "tudo help" }
func (c *HelpCmd) NeedsProvider() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, p provider.Provider, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %-38s %s\n", "tudo", "Browse tasklists (same as tudo tui)")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-38s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
Keys (tui):
  j/k, down/up       Next/previous task
  l/h, right/left    Next/previous tasklist
  x, space           Toggle done
  y                  Copy task title
  q                  Quit

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Write debug logs to <config dir>/tudo.log
`
