package patterns

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShayCichocki/swarmie/internal/swarm"
	"github.com/ShayCichocki/swarmie/pkg/models"
)

// HierarchicalResult captures all three phases of a plan/execute/synthesize
// run: the subtasks planned, every worker result, and the synthesis.
type HierarchicalResult struct {
	Goal          string              `json:"goal"`
	Subtasks      []string            `json:"subtasks"`
	WorkerResults []TaskResult        `json:"worker_results"`
	Synthesis     models.InvokeResult `json:"synthesis"`
}

// Hierarchical plans a goal into subtasks, fans the subtasks out, and
// synthesizes the worker results against the original goal. A plan that
// cannot be parsed degrades to a single subtask containing the goal
// itself, so the recipe always completes.
func Hierarchical(ctx context.Context, sw *swarm.Swarm, goal string, maxSubtasks int, allowedTools []string) HierarchicalResult {
	if maxSubtasks < 1 {
		maxSubtasks = 1
	}

	planPrompt := fmt.Sprintf(
		"Break down the following goal into at most %d independent subtasks that can "+
			"be worked on in parallel. Respond with ONLY a JSON array of subtask strings, "+
			"no other text.\n\n## Goal\n%s",
		maxSubtasks, goal,
	)
	plan := sw.RunPrompt(ctx, planPrompt, allowedTools)

	subtasks := parsePlan(payloadText(plan), maxSubtasks)
	if len(subtasks) == 0 {
		subtasks = []string{goal}
	}

	workers := FanOut(ctx, sw, subtasks, allowedTools)

	synthesisPrompt := fmt.Sprintf(
		"Synthesize the following worker results into a single coherent answer "+
			"for the original goal.\n\n## Goal\n%s\n\n## Worker Results\n%s",
		goal, marshalResults(workers),
	)
	synthesis := sw.RunPrompt(ctx, synthesisPrompt, allowedTools)

	return HierarchicalResult{
		Goal:          goal,
		Subtasks:      subtasks,
		WorkerResults: workers,
		Synthesis:     synthesis,
	}
}

// parsePlan extracts a JSON array of subtask strings from a planner
// response that may contain surrounding prose. Returns nil when no
// usable array is found.
func parsePlan(response string, maxSubtasks int) []string {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start == -1 || end == -1 || end <= start {
		return nil
	}

	var subtasks []string
	if err := json.Unmarshal([]byte(response[start:end+1]), &subtasks); err != nil {
		return nil
	}

	cleaned := subtasks[:0]
	for _, st := range subtasks {
		st = strings.TrimSpace(st)
		if st != "" {
			cleaned = append(cleaned, st)
		}
	}
	if len(cleaned) > maxSubtasks {
		cleaned = cleaned[:maxSubtasks]
	}
	return cleaned
}

// marshalResults serializes fan-out results for embedding in a prompt.
func marshalResults(results []TaskResult) string {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", results)
	}
	return string(data)
}
