package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"

	"tudo/internal/backend/googletasks"
	"tudo/internal/config"
	"tudo/internal/exitcode"
	"tudo/internal/provider"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string        { return "login" }
func (c *LoginCmd) Aliases() []string   { return nil }
func (c *LoginCmd) Synopsis() string    { return "Authenticate with Google" }
func (c *LoginCmd) Usage() string       { return "tudo login [common flags]" }
func (c *LoginCmd) NeedsProvider() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, p provider.Provider, args []string, out, errOut io.Writer) int {
	// Without a client file there is nothing to authorize against
	if !cfg.HasOAuthClient() {
		printClientSetup(errOut, cfg)
		return exitcode.AuthError
	}

	// A token that still refreshes means we are done
	if cfg.HasToken() && googletasks.TokenValid(ctx, cfg) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	oauthConfig, err := googletasks.OAuthConfig(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	// Consent URL goes to stderr so stdout stays "ok"
	token, err := googletasks.Authorize(ctx, oauthConfig, func(url string) {
		fmt.Fprintln(errOut, "Open this URL in your browser:")
		fmt.Fprintln(errOut, url)
	})
	if err != nil {
		if errors.Is(err, googletasks.ErrNoCallbackPort) {
			fmt.Fprintln(errOut, "error: could not bind to local port for OAuth callback")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.AuthError
	}

	if err := googletasks.SaveToken(cfg, token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}
	log.Printf("login: token saved to %s", cfg.TokenPath())

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// printClientSetup explains how to obtain desktop OAuth credentials.
func printClientSetup(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "error: OAuth client file not found: %s\n\n", cfg.OAuthClientPath())
	fmt.Fprint(w, clientSetupSteps)
	fmt.Fprintf(w, "   %s\n", cfg.OAuthClientPath())
	fmt.Fprintln(w, "   or point client_secret in config.yaml at it.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Then run 'tudo login' again.")
}

const clientSetupSteps = `tudo needs desktop OAuth credentials for the Google Tasks API:

1. Open https://console.cloud.google.com/apis/credentials
2. Create a project, or pick an existing one
3. Enable the Google Tasks API:
   https://console.cloud.google.com/apis/library/tasks.googleapis.com
4. Create an OAuth client ID of type 'Desktop app' and download its JSON
5. Save it as:
`
