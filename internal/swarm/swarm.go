// Package swarm orchestrates named Claude agents: it owns the agent
// registry, the shared context, the invocation history, and the
// concurrency gate that bounds simultaneous Claude invocations.
package swarm

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/ShayCichocki/swarmie/internal/claude"
	"github.com/ShayCichocki/swarmie/pkg/models"
)

// DefaultMaxConcurrent bounds simultaneous Claude invocations.
const DefaultMaxConcurrent = 5

// Recorder persists invocations beyond the bounded JSON state, e.g. into
// the sqlite archive. Implementations must be safe for concurrent use.
type Recorder interface {
	Record(entry models.HistoryEntry) error
}

// Swarm coordinates multiple Claude agents against one shared state.
// All mutation of the registry, context, memory, and history is
// serialized through an internal mutex, so concurrent Invoke calls
// targeting the same agent never lose memory appends. The admission
// gate is shared across every Invoke/Dispatch/Broadcast/RunPrompt call
// issued through one instance; waiters are admitted in FIFO order.
type Swarm struct {
	state  *State
	runner claude.Runner
	sem    *semaphore.Weighted

	maxConcurrent int
	workDir       string
	recorder      Recorder

	// mu guards state. The runner is never called while holding it.
	mu sync.Mutex
}

// Option configures a Swarm.
type Option func(*Swarm)

// WithMaxConcurrent sets the concurrency bound (default 5).
func WithMaxConcurrent(n int) Option {
	return func(s *Swarm) {
		if n >= 1 {
			s.maxConcurrent = n
		}
	}
}

// WithWorkDir sets the working directory for Claude invocations.
func WithWorkDir(dir string) Option {
	return func(s *Swarm) {
		if dir != "" {
			s.workDir = dir
		}
	}
}

// WithRunner sets the invocation backend (default: claude CLI subprocess).
func WithRunner(r claude.Runner) Option {
	return func(s *Swarm) { s.runner = r }
}

// WithState seeds the swarm with previously loaded state.
func WithState(st *State) Option {
	return func(s *Swarm) {
		if st != nil {
			s.state = st
		}
	}
}

// WithRecorder attaches an unbounded invocation recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Swarm) { s.recorder = r }
}

// New creates a Swarm with the given options.
func New(opts ...Option) *Swarm {
	s := &Swarm{
		state:         NewState(),
		maxConcurrent: DefaultMaxConcurrent,
		workDir:       ".",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = claude.NewProcessRunner(claude.ProcessConfig{})
	}
	s.sem = semaphore.NewWeighted(int64(s.maxConcurrent))
	return s
}

// Bounded returns a swarm with fresh state that shares this swarm's
// runner, recorder, and working directory but is gated at n concurrent
// invocations. Patterns that need their own concurrency bound run on
// one instead of the caller's gate.
func (s *Swarm) Bounded(n int) *Swarm {
	return New(
		WithRunner(s.runner),
		WithRecorder(s.recorder),
		WithWorkDir(s.workDir),
		WithMaxConcurrent(n),
	)
}

// Load restores a Swarm from a state file. A nonexistent path yields a
// swarm with empty default state.
func Load(path string, opts ...Option) (*Swarm, error) {
	st, err := LoadState(path)
	if err != nil {
		return nil, err
	}
	return New(append(opts, WithState(st))...), nil
}

// AddAgent registers an agent, overwriting any agent with the same name.
// Returns a copy of the registered agent.
func (s *Swarm) AddAgent(name, role, systemPrompt string, allowedTools []string) *models.Agent {
	agent := &models.Agent{
		Name:         name,
		Role:         role,
		SystemPrompt: systemPrompt,
		AllowedTools: allowedTools,
	}

	s.mu.Lock()
	s.state.Agents[name] = agent
	s.mu.Unlock()

	return agent.Clone()
}

// RemoveAgent removes an agent by name. Returns true if it existed.
func (s *Swarm) RemoveAgent(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Agents[name]; !ok {
		return false
	}
	delete(s.state.Agents, name)
	return true
}

// Agent returns a copy of the named agent, or false if unregistered.
func (s *Swarm) Agent(name string) (*models.Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent, ok := s.state.Agents[name]
	if !ok {
		return nil, false
	}
	return agent.Clone(), true
}

// AgentSummary is a lightweight view of a registered agent.
type AgentSummary struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	MemorySize int    `json:"memory_size"`
}

// ListAgents returns summaries of all registered agents, sorted by name.
func (s *Swarm) ListAgents() []AgentSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]AgentSummary, 0, len(s.state.Agents))
	for _, a := range s.state.Agents {
		summaries = append(summaries, AgentSummary{
			Name:       a.Name,
			Role:       a.Role,
			MemorySize: len(a.Memory),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries
}

// UpdateContext sets a shared context key visible to all agents.
func (s *Swarm) UpdateContext(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SharedContext[key] = value
}

// ClearContext removes all shared context.
func (s *Swarm) ClearContext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SharedContext = make(map[string]any)
}

// Context returns a copy of the shared context.
func (s *Swarm) Context() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := make(map[string]any, len(s.state.SharedContext))
	for k, v := range s.state.SharedContext {
		ctx[k] = v
	}
	return ctx
}

// History returns a copy of the invocation history, oldest first.
func (s *Swarm) History() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.HistoryEntry(nil), s.state.History...)
}

// Invoke runs a task against a named agent. An unregistered agent is a
// normal failure result, not an error, so callers branch on the success
// flag. On completion the interaction is appended to the agent's memory
// and to the swarm history.
func (s *Swarm) Invoke(ctx context.Context, agentName, task string) models.AgentResult {
	s.mu.Lock()
	agent, ok := s.state.Agents[agentName]
	var req claude.Request
	if ok {
		req = claude.Request{
			Prompt:       BuildPrompt(agent, s.state.SharedContext, task),
			AllowedTools: agent.AllowedTools,
			WorkDir:      s.workDir,
		}
	}
	s.mu.Unlock()

	if !ok {
		return models.AgentResult{
			Agent:        agentName,
			InvokeResult: models.Fail(fmt.Sprintf("agent %q not found", agentName)),
		}
	}

	result := s.runGated(ctx, req)

	s.mu.Lock()
	// The agent may have been removed while the invocation was in
	// flight; history is still recorded.
	if current, stillThere := s.state.Agents[agentName]; stillThere {
		current.Remember(task, result)
	}
	entry := s.appendHistoryLocked(agentName, task, result)
	s.mu.Unlock()

	s.record(entry)

	return models.AgentResult{Agent: agentName, InvokeResult: result}
}

// Dispatch invokes every (agent, task) assignment concurrently, bounded
// by the swarm's admission gate. Results are tagged with their agent
// name; their order does not correspond to map iteration order.
func (s *Swarm) Dispatch(ctx context.Context, assignments map[string]string) []models.AgentResult {
	results := make([]models.AgentResult, 0, len(assignments))

	var wg sync.WaitGroup
	var resultsMu sync.Mutex
	for name, task := range assignments {
		wg.Add(1)
		go func(name, task string) {
			defer wg.Done()
			res := s.Invoke(ctx, name, task)
			resultsMu.Lock()
			results = append(results, res)
			resultsMu.Unlock()
		}(name, task)
	}
	wg.Wait()

	return results
}

// Broadcast sends the same task to every registered agent.
func (s *Swarm) Broadcast(ctx context.Context, task string) []models.AgentResult {
	s.mu.Lock()
	assignments := make(map[string]string, len(s.state.Agents))
	for name := range s.state.Agents {
		assignments[name] = task
	}
	s.mu.Unlock()

	return s.Dispatch(ctx, assignments)
}

// RunPrompt invokes Claude directly without any persona context. The
// invocation is logged to history but touches no agent memory.
func (s *Swarm) RunPrompt(ctx context.Context, prompt string, allowedTools []string) models.InvokeResult {
	result := s.runGated(ctx, claude.Request{
		Prompt:       prompt,
		AllowedTools: allowedTools,
		WorkDir:      s.workDir,
	})

	s.mu.Lock()
	entry := s.appendHistoryLocked("", prompt, result)
	s.mu.Unlock()

	s.record(entry)

	return result
}

// Save persists the swarm state to the given path.
func (s *Swarm) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Save(path)
}

// MaxConcurrent returns the configured concurrency bound.
func (s *Swarm) MaxConcurrent() int {
	return s.maxConcurrent
}

// WorkDir returns the working directory used for invocations.
func (s *Swarm) WorkDir() string {
	return s.workDir
}

// runGated runs one invocation through the admission gate. Waiters are
// admitted FIFO as slots free up.
func (s *Swarm) runGated(ctx context.Context, req claude.Request) models.InvokeResult {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return models.Fail(fmt.Sprintf("cancelled while waiting for a slot: %v", err))
	}
	defer s.sem.Release(1)

	return s.runner.Run(ctx, req)
}

// appendHistoryLocked appends a history entry. Caller must hold s.mu.
func (s *Swarm) appendHistoryLocked(agentName, task string, result models.InvokeResult) models.HistoryEntry {
	entry := models.HistoryEntry{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Agent:     agentName,
		Task:      task,
		Result:    result,
	}
	s.state.History = append(s.state.History, entry)
	return entry
}

// record forwards an entry to the recorder, if any. Recorder failures
// are logged, never propagated: the archive is best-effort.
func (s *Swarm) record(entry models.HistoryEntry) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(entry); err != nil {
		log.Printf("[swarm] archive record failed: %v", err)
	}
}
