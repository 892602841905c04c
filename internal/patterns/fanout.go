// Package patterns implements orchestration recipes over a Swarm: fan-out,
// pipeline, hierarchical plan/execute/synthesize, competitive judging, and
// map-reduce. Every recipe is a pure function of its inputs; failures of
// individual invocations are embedded in the aggregate result, never raised.
package patterns

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ShayCichocki/swarmie/internal/swarm"
	"github.com/ShayCichocki/swarmie/pkg/models"
)

// TaskResult pairs one fan-out task with its result. Index is the task's
// position in the input slice.
type TaskResult struct {
	Index int    `json:"index"`
	Task  string `json:"task"`
	models.InvokeResult
}

// FanOut runs independent tasks concurrently, bounded by the swarm's
// admission gate, and returns results in input order.
func FanOut(ctx context.Context, sw *swarm.Swarm, tasks []string, allowedTools []string) []TaskResult {
	results := make([]TaskResult, len(tasks))

	var g errgroup.Group
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			results[i] = TaskResult{
				Index:        i,
				Task:         task,
				InvokeResult: sw.RunPrompt(ctx, task, allowedTools),
			}
			return nil
		})
	}
	g.Wait()

	return results
}
