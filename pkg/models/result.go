package models

// InvokeResult is the outcome of a single Claude invocation.
// It is a tagged union: when Success is true, Result holds the parsed
// (or raw text) payload; when false, Error holds the failure text and
// ExitCode the subprocess exit code when one is known.
type InvokeResult struct {
	// Success indicates whether the invocation completed successfully.
	Success bool `json:"success"`
	// Result is the structured payload parsed from stdout, or the raw
	// stdout text when it does not parse as JSON.
	Result any `json:"result,omitempty"`
	// Error is the trimmed stderr text or a descriptive failure message.
	Error string `json:"error,omitempty"`
	// ExitCode is the subprocess exit code for failures. Zero for
	// successes and for backends without a process exit code.
	ExitCode int `json:"exit_code,omitempty"`
}

// OK returns a successful result carrying the given payload.
func OK(payload any) InvokeResult {
	return InvokeResult{Success: true, Result: payload}
}

// Fail returns a failed result with the given error text.
func Fail(errText string) InvokeResult {
	return InvokeResult{Success: false, Error: errText}
}

// FailExit returns a failed result with an error text and exit code.
func FailExit(errText string, exitCode int) InvokeResult {
	return InvokeResult{Success: false, Error: errText, ExitCode: exitCode}
}

// Payload returns the result payload on success, or the error text on
// failure. This mirrors what gets recorded into agent memory.
func (r InvokeResult) Payload() any {
	if r.Success {
		return r.Result
	}
	return r.Error
}

// AgentResult is an InvokeResult tagged with the agent that produced it.
// Dispatch and Broadcast make no ordering guarantee, so callers correlate
// results by the Agent field.
type AgentResult struct {
	// Agent is the name of the agent this result belongs to.
	Agent string `json:"agent"`
	InvokeResult
}
