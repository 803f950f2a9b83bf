// Package cli parses the command line and dispatches to registered commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tudo/internal/commands"
	"tudo/internal/config"
	"tudo/internal/exitcode"
	"tudo/internal/provider"
)

// DefaultCommand runs when no command is given.
const DefaultCommand = "tui"

// ProviderFactory creates a loaded Provider from config.
// Used to inject the backend during dispatch.
type ProviderFactory func(ctx context.Context, cfg *config.Config) (provider.Provider, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ProviderFactory

	// RequireCredentials makes the dispatcher check for the OAuth client
	// file and token before calling the factory, so a missing file gets a
	// readable message instead of a read error.
	RequireCredentials bool
}

// NewDispatcher creates a new dispatcher with the given registry and provider factory.
func NewDispatcher(registry *commands.Registry, factory ProviderFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return d.dispatch(ctx, DefaultCommand, nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	// Look up command
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	// Parse flags
	remaining := args[1:]
	return d.dispatchCommand(ctx, cmd, remaining, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	// Parse flags
	if err := fs.Parse(args); err != nil {
		// Handle specific error types
		errStr := err.Error()

		// Check for missing flag value
		if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
			// Extract flag name
			parts := strings.Split(errStr, ":")
			if len(parts) > 0 {
				flagPart := strings.TrimSpace(parts[0])
				flagPart = strings.TrimPrefix(flagPart, "flag ")
				fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagPart)
				return exitcode.UserError
			}
		}

		// Check for unknown flag
		if strings.HasPrefix(errStr, "flag provided but not defined:") {
			flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
			return exitcode.UserError
		}

		// Generic error handling for bad flag values
		if strings.Contains(errStr, "invalid value") {
			fmt.Fprintf(errOut, "error: %s\n", errStr)
			return exitcode.UserError
		}

		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	defer closeLog()
	log.Printf("dispatch: %s (config %s)", cmd.Name(), cfg.Dir)

	var p provider.Provider
	if cmd.NeedsProvider() {
		if d.RequireCredentials {
			if !cfg.HasOAuthClient() {
				fmt.Fprintf(errOut, "error: OAuth client file not found: %s (run: tudo login)\n", cfg.OAuthClientPath())
				return exitcode.AuthError
			}
			if !cfg.HasToken() {
				fmt.Fprintf(errOut, "error: not logged in (run: tudo login)\n")
				return exitcode.AuthError
			}
		}
		if d.factory == nil {
			fmt.Fprintf(errOut, "error: no backend configured\n")
			return exitcode.BackendError
		}

		p, err = d.factory(ctx, cfg)
		if err != nil {
			log.Printf("dispatch: loading tasklists: %v", err)
			return reportProviderError(errOut, err)
		}
	}

	return cmd.Run(ctx, cfg, p, positionalArgs, out, errOut)
}

// reportProviderError maps a factory failure to an exit code. Anything that
// is not a remote failure, or that the backend rejected as unauthorized, is
// treated as an auth problem.
func reportProviderError(errOut io.Writer, err error) int {
	if remote, ok := provider.IsRemote(err); ok && !remote.IsUnauthorized() {
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: auth error: %s (run: tudo login)\n", err)
	return exitcode.AuthError
}

// setupLogging sends the standard logger to the log file when debugging and
// discards it otherwise; the terminal belongs to the UI.
func setupLogging(cfg *config.Config) (func(), error) {
	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := tea.LogToFile(cfg.LogPath(), "tudo")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() {
		log.SetOutput(io.Discard)
		f.Close()
	}, nil
}
