package patterns

import (
	"context"
	"fmt"

	"github.com/ShayCichocki/swarmie/internal/swarm"
	"github.com/ShayCichocki/swarmie/pkg/models"
)

// personaHints are cycled across competing solvers so each attempt
// optimizes for a different quality.
var personaHints = []string{
	"Focus on clarity and simplicity.",
	"Focus on performance and efficiency.",
	"Focus on robustness and edge cases.",
}

// CompetitiveResult holds every competing solution plus the judge's
// verdict. The judgment is the judge's free-text output; callers decide
// how much to trust it.
type CompetitiveResult struct {
	Task      string              `json:"task"`
	Solutions []TaskResult        `json:"solutions"`
	Judgment  models.InvokeResult `json:"judgment"`
}

// Competitive has numAgents solvers attempt the same task, each with a
// different emphasis, then asks a judge to pick the best solution by
// index and explain why. The solvers run on a swarm gated at numAgents
// so every attempt can be in flight at once regardless of the caller's
// bound; the judge runs through the caller's swarm.
func Competitive(ctx context.Context, sw *swarm.Swarm, task string, numAgents int, allowedTools []string) CompetitiveResult {
	if numAgents < 1 {
		numAgents = 1
	}

	prompts := make([]string, numAgents)
	for i := 0; i < numAgents; i++ {
		prompts[i] = fmt.Sprintf("%s\n\n%s", task, personaHints[i%len(personaHints)])
	}

	solutions := FanOut(ctx, sw.Bounded(numAgents), prompts, allowedTools)

	judgePrompt := fmt.Sprintf(
		"You are judging %d competing solutions to the same task. State which "+
			"solution (by index, 0 to %d) is best and why.\n\n## Task\n%s\n\n## Solutions\n%s",
		numAgents, numAgents-1, task, marshalResults(solutions),
	)
	judgment := sw.RunPrompt(ctx, judgePrompt, allowedTools)

	return CompetitiveResult{
		Task:      task,
		Solutions: solutions,
		Judgment:  judgment,
	}
}
