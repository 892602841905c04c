// Package tools resolves tool profiles and explicit tool names into the
// allow-lists passed to Claude invocations.
package tools

import (
	"fmt"
	"sort"
	"strings"
)

// Profiles maps profile names to the tool allow-lists they expand to.
// The "all" profile is the full known tool set.
var Profiles = map[string][]string{
	"all": {
		"Read", "Write", "Edit", "Glob", "Grep",
		"Bash", "WebSearch", "WebFetch", "AskUserQuestion",
		"TodoWrite", "Task", "NotebookEdit",
	},
	"build": {
		"Read", "Write", "Edit", "Glob", "Grep", "Bash", "AskUserQuestion",
	},
	"research": {
		"Read", "Glob", "Grep", "WebSearch", "WebFetch",
	},
	"code": {
		"Read", "Write", "Edit", "Glob", "Grep", "Bash",
	},
	"readonly": {
		"Read", "Glob", "Grep",
	},
}

// ProfileNames returns the known profile names in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve combines a profile name and explicit tool names into one
// deduplicated, order-preserving allow-list. Entries in tools may be
// profile names themselves; "all" (case-insensitive) expands to the full
// tool set. Returns nil when nothing was requested, leaving the
// invocation unrestricted.
func Resolve(profile string, toolNames []string) ([]string, error) {
	var resolved []string

	if profile != "" {
		expansion, ok := Profiles[profile]
		if !ok {
			return nil, fmt.Errorf("unknown profile %q: available profiles are %s",
				profile, strings.Join(ProfileNames(), ", "))
		}
		resolved = append(resolved, expansion...)
	}

	for _, name := range toolNames {
		if strings.EqualFold(name, "all") {
			resolved = append(resolved, Profiles["all"]...)
		} else if expansion, ok := Profiles[name]; ok {
			resolved = append(resolved, expansion...)
		} else {
			resolved = append(resolved, name)
		}
	}

	if len(resolved) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(resolved))
	unique := resolved[:0]
	for _, name := range resolved {
		if seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	return unique, nil
}
