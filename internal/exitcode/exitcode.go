// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, task number out of range).
	UserError = 1

	// ConfigError indicates an invalid config.toml or environment override.
	ConfigError = 2

	// StorageError indicates the task list could not be read or written.
	StorageError = 3
)
