package swarm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ShayCichocki/swarmie/internal/claude"
	"github.com/ShayCichocki/swarmie/pkg/models"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// fakeRunner returns canned results and tracks in-flight concurrency.
type fakeRunner struct {
	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	requests    []claude.Request

	delay  time.Duration
	result func(req claude.Request) models.InvokeResult
}

func (f *fakeRunner) Run(ctx context.Context, req claude.Request) models.InvokeResult {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if f.result != nil {
		return f.result(req)
	}
	return models.OK("ok")
}

func (f *fakeRunner) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func TestInvoke_UnknownAgentIsFailureResult(t *testing.T) {
	fake := &fakeRunner{}
	sw := New(WithRunner(fake))

	res := sw.Invoke(context.Background(), "ghost", "do something")

	if res.Success {
		t.Fatal("expected failure result for unregistered agent")
	}
	if res.Agent != "ghost" {
		t.Errorf("Agent = %q, want %q", res.Agent, "ghost")
	}
	if fake.requestCount() != 0 {
		t.Error("no invocation should reach the runner for an unknown agent")
	}
	if len(sw.History()) != 0 {
		t.Error("unknown-agent failures should not be logged to history")
	}
}

func TestInvoke_AppendsMemoryAndHistory(t *testing.T) {
	fake := &fakeRunner{}
	sw := New(WithRunner(fake))
	sw.AddAgent("security", "security engineer", "", nil)

	res := sw.Invoke(context.Background(), "security", "scan auth.py")
	if !res.Success {
		t.Fatalf("Invoke failed: %v", res.Error)
	}

	agent, ok := sw.Agent("security")
	if !ok {
		t.Fatal("agent disappeared")
	}
	if len(agent.Memory) != 1 {
		t.Fatalf("memory size = %d, want 1", len(agent.Memory))
	}
	if agent.Memory[0].Task != "scan auth.py" {
		t.Errorf("memory task = %q, want %q", agent.Memory[0].Task, "scan auth.py")
	}
	if !agent.Memory[0].Success {
		t.Error("memory entry should record the success flag")
	}

	history := sw.History()
	if len(history) != 1 {
		t.Fatalf("history size = %d, want 1", len(history))
	}
	if history[0].Agent != "security" || history[0].Task != "scan auth.py" {
		t.Errorf("history entry = %+v", history[0])
	}
	if history[0].ID == "" {
		t.Error("history entry should carry an ID")
	}
}

func TestInvoke_FailureRecordedInMemory(t *testing.T) {
	fake := &fakeRunner{result: func(claude.Request) models.InvokeResult {
		return models.FailExit("boom", 3)
	}}
	sw := New(WithRunner(fake))
	sw.AddAgent("worker", "generalist", "", nil)

	res := sw.Invoke(context.Background(), "worker", "explode")
	if res.Success {
		t.Fatal("expected failure result")
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}

	agent, _ := sw.Agent("worker")
	if len(agent.Memory) != 1 {
		t.Fatalf("memory size = %d, want 1", len(agent.Memory))
	}
	if agent.Memory[0].Success {
		t.Error("memory entry should record the failure")
	}
	if agent.Memory[0].Result != "boom" {
		t.Errorf("memory result = %v, want the error text", agent.Memory[0].Result)
	}
}

func TestInvoke_PassesAllowListAndWorkDir(t *testing.T) {
	fake := &fakeRunner{}
	sw := New(WithRunner(fake), WithWorkDir("/srv/repo"))
	sw.AddAgent("reader", "reader", "", []string{"Read", "Glob"})

	sw.Invoke(context.Background(), "reader", "read things")

	if len(fake.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(fake.requests))
	}
	req := fake.requests[0]
	if req.WorkDir != "/srv/repo" {
		t.Errorf("WorkDir = %q, want %q", req.WorkDir, "/srv/repo")
	}
	if len(req.AllowedTools) != 2 || req.AllowedTools[0] != "Read" {
		t.Errorf("AllowedTools = %v", req.AllowedTools)
	}
}

func TestDispatch_TagsResultsByAgent(t *testing.T) {
	fake := &fakeRunner{result: func(req claude.Request) models.InvokeResult {
		return models.OK("done")
	}}
	sw := New(WithRunner(fake))
	sw.AddAgent("a", "role a", "", nil)
	sw.AddAgent("b", "role b", "", nil)

	results := sw.Dispatch(context.Background(), map[string]string{
		"a": "task1",
		"b": "task2",
	})

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	seen := map[string]bool{}
	for _, r := range results {
		seen[r.Agent] = true
		if !r.Success {
			t.Errorf("result for %s failed: %v", r.Agent, r.Error)
		}
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("results missing agent tags: %+v", results)
	}
}

func TestDispatch_DoesNotAbortOnFailure(t *testing.T) {
	fake := &fakeRunner{result: func(req claude.Request) models.InvokeResult {
		return models.Fail("one bad apple")
	}}
	sw := New(WithRunner(fake))
	sw.AddAgent("a", "r", "", nil)

	results := sw.Dispatch(context.Background(), map[string]string{
		"a":       "task1",
		"missing": "task2",
	})

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (failures embedded, not raised)", len(results))
	}
}

func TestDispatch_RespectsConcurrencyBound(t *testing.T) {
	fake := &fakeRunner{delay: 20 * time.Millisecond}
	sw := New(WithRunner(fake), WithMaxConcurrent(2))

	assignments := make(map[string]string)
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("agent-%d", i)
		sw.AddAgent(name, "worker", "", nil)
		assignments[name] = "work"
	}

	sw.Dispatch(context.Background(), assignments)

	if fake.maxInFlight > 2 {
		t.Errorf("max in-flight invocations = %d, want <= 2", fake.maxInFlight)
	}
	if fake.requestCount() != 8 {
		t.Errorf("requests = %d, want 8", fake.requestCount())
	}
}

func TestConcurrentInvoke_SameAgentLosesNoMemory(t *testing.T) {
	fake := &fakeRunner{delay: time.Millisecond}
	sw := New(WithRunner(fake), WithMaxConcurrent(8))
	sw.AddAgent("busy", "worker", "", nil)

	const n = 24
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sw.Invoke(context.Background(), "busy", fmt.Sprintf("task-%d", i))
		}(i)
	}
	wg.Wait()

	agent, _ := sw.Agent("busy")
	if len(agent.Memory) != n {
		t.Errorf("memory size = %d, want %d (no lost appends)", len(agent.Memory), n)
	}
	if len(sw.History()) != n {
		t.Errorf("history size = %d, want %d", len(sw.History()), n)
	}
}

func TestBroadcast_ReachesAllAgents(t *testing.T) {
	fake := &fakeRunner{}
	sw := New(WithRunner(fake))
	sw.AddAgent("a", "r", "", nil)
	sw.AddAgent("b", "r", "", nil)
	sw.AddAgent("c", "r", "", nil)

	results := sw.Broadcast(context.Background(), "status report")

	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for _, name := range []string{"a", "b", "c"} {
		agent, _ := sw.Agent(name)
		if len(agent.Memory) != 1 {
			t.Errorf("agent %s memory = %d, want 1", name, len(agent.Memory))
		}
	}
}

func TestRunPrompt_LogsHistoryNotMemory(t *testing.T) {
	fake := &fakeRunner{}
	sw := New(WithRunner(fake))
	sw.AddAgent("a", "r", "", nil)

	res := sw.RunPrompt(context.Background(), "ad hoc question", []string{"Read"})
	if !res.Success {
		t.Fatalf("RunPrompt failed: %v", res.Error)
	}

	history := sw.History()
	if len(history) != 1 {
		t.Fatalf("history = %d, want 1", len(history))
	}
	if history[0].Agent != "" {
		t.Errorf("ad hoc history entry should have no agent, got %q", history[0].Agent)
	}

	agent, _ := sw.Agent("a")
	if len(agent.Memory) != 0 {
		t.Error("RunPrompt must not touch agent memory")
	}
}

func TestAddAgent_OverwritesByName(t *testing.T) {
	sw := New(WithRunner(&fakeRunner{}))
	sw.AddAgent("dev", "junior developer", "", nil)
	sw.AddAgent("dev", "senior developer", "New prompt.", nil)

	agent, ok := sw.Agent("dev")
	if !ok {
		t.Fatal("agent missing")
	}
	if agent.Role != "senior developer" {
		t.Errorf("role = %q, want the overwritten role", agent.Role)
	}
	if len(sw.ListAgents()) != 1 {
		t.Error("overwrite should not create a second agent")
	}
}

func TestRemoveAgent(t *testing.T) {
	sw := New(WithRunner(&fakeRunner{}))
	sw.AddAgent("tmp", "r", "", nil)

	if !sw.RemoveAgent("tmp") {
		t.Error("RemoveAgent should return true for an existing agent")
	}
	if sw.RemoveAgent("tmp") {
		t.Error("RemoveAgent should return false for a missing agent")
	}
}

func TestSaveAndLoad_SwarmRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	fake := &fakeRunner{}
	sw := New(WithRunner(fake))
	sw.AddAgent("security", "security engineer", "Stay sharp.", []string{"Read"})
	sw.UpdateContext("repo", "payments")
	sw.Invoke(context.Background(), "security", "scan auth.py")

	if err := sw.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	restored, err := Load(path, WithRunner(fake))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	agent, ok := restored.Agent("security")
	if !ok {
		t.Fatal("restored swarm missing agent")
	}
	if len(agent.Memory) != 1 {
		t.Errorf("restored memory = %d, want 1", len(agent.Memory))
	}
	if restored.Context()["repo"] != "payments" {
		t.Error("restored context missing key")
	}
	if len(restored.History()) != 1 {
		t.Errorf("restored history = %d, want 1", len(restored.History()))
	}
}

func TestBounded_SharesBackendWithOwnGate(t *testing.T) {
	fake := &fakeRunner{}

	var mu sync.Mutex
	var recorded int
	sw := New(
		WithRunner(fake),
		WithWorkDir("/srv/repo"),
		WithMaxConcurrent(2),
		WithRecorder(recorderFunc(func(models.HistoryEntry) error {
			mu.Lock()
			recorded++
			mu.Unlock()
			return nil
		})),
	)
	sw.AddAgent("a", "r", "", nil)

	derived := sw.Bounded(7)

	if derived.MaxConcurrent() != 7 {
		t.Errorf("MaxConcurrent = %d, want 7", derived.MaxConcurrent())
	}
	if derived.WorkDir() != "/srv/repo" {
		t.Errorf("WorkDir = %q, want inherited", derived.WorkDir())
	}
	if len(derived.ListAgents()) != 0 {
		t.Error("derived swarm should start with fresh state")
	}

	derived.RunPrompt(context.Background(), "exercise the backend", nil)
	if fake.requestCount() != 1 {
		t.Error("derived swarm should share the runner")
	}
	mu.Lock()
	if recorded != 1 {
		t.Error("derived swarm should share the recorder")
	}
	mu.Unlock()

	// The caller's state is untouched.
	if len(sw.History()) != 0 {
		t.Error("derived swarm must not write to the caller's history")
	}
}

// recorderFunc adapts a function to the Recorder interface.
type recorderFunc func(models.HistoryEntry) error

func (f recorderFunc) Record(e models.HistoryEntry) error { return f(e) }

func TestRecorder_ReceivesEveryInvocation(t *testing.T) {
	var mu sync.Mutex
	var recorded []models.HistoryEntry

	sw := New(
		WithRunner(&fakeRunner{}),
		WithRecorder(recorderFunc(func(e models.HistoryEntry) error {
			mu.Lock()
			recorded = append(recorded, e)
			mu.Unlock()
			return nil
		})),
	)
	sw.AddAgent("a", "r", "", nil)

	sw.Invoke(context.Background(), "a", "task")
	sw.RunPrompt(context.Background(), "raw", nil)

	mu.Lock()
	defer mu.Unlock()
	if len(recorded) != 2 {
		t.Errorf("recorded = %d entries, want 2", len(recorded))
	}
}
