// Package models defines the shared data model for swarmie: agent
// personas, invocation results, and the persisted swarm state shapes.
package models

import "time"

// MemoryEntry is a single interaction recorded in an agent's memory.
// Entries are append-only and never mutated after insertion.
type MemoryEntry struct {
	// Timestamp is when the interaction completed.
	Timestamp time.Time `json:"timestamp"`
	// Task is the task text the agent was invoked with.
	Task string `json:"task"`
	// Result is the invocation payload on success, or the error text.
	Result any `json:"result"`
	// Success mirrors the invocation's success flag.
	Success bool `json:"success"`
}

// Agent is a named persona: a role, system prompt, tool allow-list, and
// an append-only memory of past interactions. Agents are registered by
// name and replayed into every prompt built for them.
type Agent struct {
	// Name uniquely identifies the agent within a swarm.
	Name string `json:"name"`
	// Role is free text describing what the agent is (e.g. "security engineer").
	Role string `json:"role"`
	// SystemPrompt is prepended to every prompt built for this agent.
	SystemPrompt string `json:"system_prompt,omitempty"`
	// AllowedTools restricts the tools the Claude invocation may use.
	// Nil means unrestricted.
	AllowedTools []string `json:"allowed_tools,omitempty"`
	// Memory is the ordered interaction history, oldest first.
	Memory []MemoryEntry `json:"memory"`
}

// RecentMemory returns the most recent n memory entries in order.
// Returns the full memory when it holds fewer than n entries.
func (a *Agent) RecentMemory(n int) []MemoryEntry {
	if len(a.Memory) <= n {
		return a.Memory
	}
	return a.Memory[len(a.Memory)-n:]
}

// Remember appends an interaction record to the agent's memory.
func (a *Agent) Remember(task string, result InvokeResult) {
	a.Memory = append(a.Memory, MemoryEntry{
		Timestamp: time.Now(),
		Task:      task,
		Result:    result.Payload(),
		Success:   result.Success,
	})
}

// Clone returns a deep copy of the agent. Used when handing agents out
// of the swarm so callers cannot mutate registry state.
func (a *Agent) Clone() *Agent {
	cp := *a
	cp.AllowedTools = append([]string(nil), a.AllowedTools...)
	cp.Memory = append([]MemoryEntry(nil), a.Memory...)
	return &cp
}
