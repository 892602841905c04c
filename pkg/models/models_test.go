package models

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestInvokeResultHelpers(t *testing.T) {
	ok := OK(map[string]any{"answer": 42})
	if !ok.Success || ok.Error != "" || ok.ExitCode != 0 {
		t.Errorf("OK built unexpected result: %+v", ok)
	}

	fail := Fail("went wrong")
	if fail.Success || fail.Error != "went wrong" {
		t.Errorf("Fail built unexpected result: %+v", fail)
	}

	exit := FailExit("claude exited with code 2", 2)
	if exit.Success || exit.ExitCode != 2 {
		t.Errorf("FailExit built unexpected result: %+v", exit)
	}
}

func TestInvokeResult_Payload(t *testing.T) {
	if got := OK("value").Payload(); got != "value" {
		t.Errorf("Payload() = %v, want the result on success", got)
	}
	if got := Fail("oops").Payload(); got != "oops" {
		t.Errorf("Payload() = %v, want the error text on failure", got)
	}
}

func TestInvokeResult_JSONShape(t *testing.T) {
	data, err := json.Marshal(FailExit("boom", 3))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["success"] != false || m["error"] != "boom" || m["exit_code"] != float64(3) {
		t.Errorf("unexpected JSON shape: %s", data)
	}
	if _, present := m["result"]; present {
		t.Error("empty result should be omitted from JSON")
	}
}

func TestAgent_RememberAndRecentMemory(t *testing.T) {
	agent := &Agent{Name: "worker"}

	for i := 0; i < 7; i++ {
		agent.Remember(fmt.Sprintf("task-%d", i), OK(fmt.Sprintf("result-%d", i)))
	}

	if len(agent.Memory) != 7 {
		t.Fatalf("memory size = %d, want 7", len(agent.Memory))
	}

	recent := agent.RecentMemory(5)
	if len(recent) != 5 {
		t.Fatalf("recent = %d entries, want 5", len(recent))
	}
	if recent[0].Task != "task-2" || recent[4].Task != "task-6" {
		t.Errorf("recent window wrong: first=%q last=%q", recent[0].Task, recent[4].Task)
	}

	// Window larger than memory returns everything.
	if got := agent.RecentMemory(100); len(got) != 7 {
		t.Errorf("RecentMemory(100) = %d entries, want 7", len(got))
	}
}

func TestAgent_RememberStoresErrorTextOnFailure(t *testing.T) {
	agent := &Agent{Name: "worker"}
	agent.Remember("bad task", Fail("it broke"))

	entry := agent.Memory[0]
	if entry.Success {
		t.Error("failure should be recorded with Success=false")
	}
	if entry.Result != "it broke" {
		t.Errorf("entry result = %v, want the error text", entry.Result)
	}
	if entry.Timestamp.IsZero() {
		t.Error("entry should carry a timestamp")
	}
}

func TestAgent_CloneIsIndependent(t *testing.T) {
	agent := &Agent{
		Name:         "a",
		AllowedTools: []string{"Read"},
	}
	agent.Remember("t", OK("r"))

	clone := agent.Clone()
	clone.AllowedTools[0] = "Write"
	clone.Memory[0].Task = "mutated"
	clone.Role = "changed"

	if agent.AllowedTools[0] != "Read" {
		t.Error("clone shares the allowed tools slice")
	}
	if agent.Memory[0].Task != "t" {
		t.Error("clone shares the memory slice")
	}
	if agent.Role == "changed" {
		t.Error("clone shares scalar fields")
	}
}
