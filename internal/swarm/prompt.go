package swarm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ShayCichocki/swarmie/pkg/models"
)

// memoryWindow is how many recent memory entries are replayed into each
// prompt, regardless of total memory size.
const memoryWindow = 5

// BuildPrompt assembles the full prompt for an agent. The ordering is a
// contract: identity, system prompt, shared context, recent memory, then
// the task, separated by blank lines. Context and memory always precede
// the task so the external agent reads them first.
func BuildPrompt(agent *models.Agent, sharedContext map[string]any, task string) string {
	var parts []string

	if agent.Role != "" {
		parts = append(parts, fmt.Sprintf("You are %s, a %s.", agent.Name, agent.Role))
	}
	if agent.SystemPrompt != "" {
		parts = append(parts, agent.SystemPrompt)
	}

	if len(sharedContext) > 0 {
		parts = append(parts, "## Shared Context\n"+marshalBlock(sharedContext))
	}

	if len(agent.Memory) > 0 {
		parts = append(parts, "## Your Recent Memory\n"+marshalBlock(agent.RecentMemory(memoryWindow)))
	}

	parts = append(parts, "## Task\n"+task)

	return strings.Join(parts, "\n\n")
}

// marshalBlock serializes a value as indented JSON for embedding in a
// prompt block. Values that cannot marshal fall back to fmt formatting
// so prompt assembly never fails.
func marshalBlock(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
