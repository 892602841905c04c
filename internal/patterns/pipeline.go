package patterns

import (
	"context"

	"github.com/ShayCichocki/swarmie/internal/swarm"
	"github.com/ShayCichocki/swarmie/pkg/models"
)

// StageResult captures one pipeline stage: the prompt actually sent
// (including any previous-stage output) and the invocation result.
type StageResult struct {
	Stage  int    `json:"stage"`
	Prompt string `json:"prompt"`
	models.InvokeResult
}

// PipelineResult holds every stage result plus the final stage's result.
type PipelineResult struct {
	Stages []StageResult       `json:"stages"`
	Final  models.InvokeResult `json:"final"`
}

// Pipeline runs stages strictly sequentially. From the second stage on,
// the previous stage's output is appended to the prompt under a
// "## Previous Stage Output" block. A failed stage does not stop the
// pipeline; its error text flows forward as that stage's output.
func Pipeline(ctx context.Context, sw *swarm.Swarm, stages []string, allowedTools []string) PipelineResult {
	out := PipelineResult{Stages: make([]StageResult, 0, len(stages))}

	var previous string
	for i, stage := range stages {
		prompt := stage
		if i > 0 {
			prompt = stage + "\n\n## Previous Stage Output\n" + previous
		}

		result := sw.RunPrompt(ctx, prompt, allowedTools)
		out.Stages = append(out.Stages, StageResult{
			Stage:        i,
			Prompt:       prompt,
			InvokeResult: result,
		})
		out.Final = result

		previous = payloadText(result)
	}

	return out
}
