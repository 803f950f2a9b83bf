// Package exitcode defines exit codes for the CLI.
package exitcode

// Exit codes returned by tudo.
const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command, bad config).
	UserError = 1

	// AuthError indicates missing or rejected credentials.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
