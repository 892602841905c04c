package patterns

import (
	"context"
	"strings"

	"github.com/ShayCichocki/swarmie/internal/swarm"
	"github.com/ShayCichocki/swarmie/pkg/models"
)

// itemPlaceholder is substituted with each item in the map template.
const itemPlaceholder = "{item}"

// MapReduceResult holds the input items, the per-item map results, and
// the reduce result.
type MapReduceResult struct {
	Items      []string            `json:"items"`
	MapResults []TaskResult        `json:"map_results"`
	Reduce     models.InvokeResult `json:"reduce"`
}

// MapReduce substitutes each item into mapTemplate's {item} placeholder,
// fans the map prompts out, then runs one reduce prompt over all map
// results. Failed map results are embedded in the reduce input rather
// than aborting the reduce.
func MapReduce(ctx context.Context, sw *swarm.Swarm, items []string, mapTemplate, reduceTemplate string, allowedTools []string) MapReduceResult {
	prompts := make([]string, len(items))
	for i, item := range items {
		prompts[i] = strings.ReplaceAll(mapTemplate, itemPlaceholder, item)
	}

	mapResults := FanOut(ctx, sw, prompts, allowedTools)

	reducePrompt := reduceTemplate + "\n\n## Map Results\n" + marshalResults(mapResults)
	reduce := sw.RunPrompt(ctx, reducePrompt, allowedTools)

	return MapReduceResult{
		Items:      items,
		MapResults: mapResults,
		Reduce:     reduce,
	}
}
