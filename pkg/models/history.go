package models

import "time"

// HistoryEntry records a single invocation in the swarm-wide history.
// Both agent-scoped invocations and ad hoc prompts are recorded; the
// Agent field is empty for ad hoc prompts.
type HistoryEntry struct {
	// ID uniquely identifies the entry (also the archive primary key).
	ID string `json:"id"`
	// Timestamp is when the invocation completed.
	Timestamp time.Time `json:"timestamp"`
	// Agent is the invoked agent's name, or empty for raw prompts.
	Agent string `json:"agent,omitempty"`
	// Task is the task or prompt text.
	Task string `json:"task"`
	// Result is the full invocation outcome.
	Result InvokeResult `json:"result"`
}
