// Package exec provides an interface for command execution.
package exec

import (
	"context"
)

// CommandRunner defines the interface for running external commands.
// This abstraction allows mocking command execution in tests.
type CommandRunner interface {
	// Run executes a command and returns captured stdout and stderr
	// separately, plus the process exit code. The working directory is
	// set to workDir if non-empty. A non-zero exit code is not an error;
	// err is non-nil only when the process could not be run at all
	// (e.g. the binary is missing from PATH).
	Run(ctx context.Context, workDir string, name string, args ...string) (stdout, stderr []byte, exitCode int, err error)

	// LookPath reports whether the named binary can be found in PATH.
	LookPath(name string) error
}
