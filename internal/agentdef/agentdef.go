// Package agentdef loads agent persona definitions from YAML files for
// bulk registration.
package agentdef

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/swarmie/internal/tools"
)

// Definition describes one agent persona. AllowedTools entries may be
// tool names or profile names; Profile adds a whole profile on top.
type Definition struct {
	Name         string   `yaml:"name"`
	Role         string   `yaml:"role"`
	SystemPrompt string   `yaml:"system_prompt"`
	AllowedTools []string `yaml:"allowed_tools"`
	Profile      string   `yaml:"profile"`
}

// File is the top-level YAML document shape.
type File struct {
	Agents []Definition `yaml:"agents"`
}

// Load reads agent definitions from a YAML file and resolves each
// definition's tool allow-list. Definitions must have unique, non-empty
// names.
func Load(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agent definitions: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse agent definitions: %w", err)
	}
	if len(file.Agents) == 0 {
		return nil, fmt.Errorf("no agents defined in %s", path)
	}

	seen := make(map[string]bool, len(file.Agents))
	for i := range file.Agents {
		def := &file.Agents[i]

		if def.Name == "" {
			return nil, fmt.Errorf("agent %d has no name", i)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("duplicate agent name %q", def.Name)
		}
		seen[def.Name] = true

		resolved, err := tools.Resolve(def.Profile, def.AllowedTools)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", def.Name, err)
		}
		def.AllowedTools = resolved
		def.Profile = ""
	}

	return file.Agents, nil
}
