package claude

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShayCichocki/swarmie/internal/exec"
	"github.com/ShayCichocki/swarmie/pkg/models"
)

// DefaultBinary is the name of the Claude Code CLI binary.
const DefaultBinary = "claude"

// DefaultOutputFormat is the output format requested from the CLI.
const DefaultOutputFormat = "json"

// ProcessConfig configures a ProcessRunner.
type ProcessConfig struct {
	// Binary is the agent binary name. Defaults to "claude".
	Binary string
	// OutputFormat is passed as --output-format. Defaults to "json".
	OutputFormat string
	// Exec runs the subprocess. Defaults to an os/exec-backed runner.
	Exec exec.CommandRunner
}

// ProcessRunner invokes the Claude Code CLI as a subprocess:
//
//	claude -p <prompt> --output-format <format> [--allowedTools a,b,c]
//
// Stdout is parsed as JSON when possible; unparseable stdout on a zero
// exit is still a success carrying the raw text. A non-zero exit is a
// failure carrying the trimmed stderr and the exit code. No timeout is
// enforced beyond the caller's context.
type ProcessRunner struct {
	binary       string
	outputFormat string
	exec         exec.CommandRunner
}

// NewProcessRunner creates a ProcessRunner, filling in defaults for any
// zero fields in cfg.
func NewProcessRunner(cfg ProcessConfig) *ProcessRunner {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = DefaultOutputFormat
	}
	if cfg.Exec == nil {
		cfg.Exec = exec.NewRunner()
	}
	return &ProcessRunner{
		binary:       cfg.Binary,
		outputFormat: cfg.OutputFormat,
		exec:         cfg.Exec,
	}
}

// Run executes the CLI with the request's prompt and allow-list.
func (r *ProcessRunner) Run(ctx context.Context, req Request) models.InvokeResult {
	args := []string{"-p", req.Prompt, "--output-format", r.outputFormat}
	if len(req.AllowedTools) > 0 {
		args = append(args, "--allowedTools", strings.Join(req.AllowedTools, ","))
	}

	stdout, stderr, exitCode, err := r.exec.Run(ctx, req.WorkDir, r.binary, args...)
	if err != nil {
		return models.FailExit(fmt.Sprintf("start %s: %v", r.binary, err), -1)
	}

	if exitCode != 0 {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = fmt.Sprintf("%s exited with code %d", r.binary, exitCode)
		}
		return models.FailExit(msg, exitCode)
	}

	return parseStdout(stdout)
}

// parseStdout converts CLI stdout into a success result, preferring
// structured JSON but degrading to raw text rather than failing.
func parseStdout(stdout []byte) models.InvokeResult {
	trimmed := strings.TrimSpace(string(stdout))

	var payload any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return models.OK(trimmed)
	}
	return models.OK(payload)
}

// Verify ProcessRunner implements Runner at compile time.
var _ Runner = (*ProcessRunner)(nil)
