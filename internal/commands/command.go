// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"tudo/internal/config"
	"tudo/internal/provider"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsProvider returns true if the command works on loaded tasklists.
	// Commands like help, version, login, logout return false.
	NeedsProvider() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, settings).
	// p is nil if NeedsProvider() returns false; otherwise it is loaded.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, p provider.Provider, args []string, out, errOut io.Writer) int
}
