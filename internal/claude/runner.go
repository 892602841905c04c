// Package claude invokes the Claude Code agent and normalizes its
// output into tagged success/failure results. Two backends exist: a
// subprocess runner wrapping the claude CLI, and a direct Anthropic API
// runner.
package claude

import (
	"context"

	"github.com/ShayCichocki/swarmie/pkg/models"
)

// Request describes a single invocation of the external agent.
type Request struct {
	// Prompt is the fully assembled prompt text.
	Prompt string
	// AllowedTools restricts the tools the agent may use.
	// Nil means unrestricted.
	AllowedTools []string
	// WorkDir is the working directory for the invocation.
	WorkDir string
}

// Runner executes a single Claude invocation. Failures are carried in
// the returned result rather than as errors, so aggregation layers never
// have to unwind on one bad invocation.
type Runner interface {
	Run(ctx context.Context, req Request) models.InvokeResult
}
