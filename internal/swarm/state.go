package swarm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ShayCichocki/swarmie/pkg/models"
)

// DefaultStatePath is the default location of the persisted swarm state.
const DefaultStatePath = ".swarm_state.json"

// historyLimit bounds how many history entries survive a save. Older
// entries are dropped silently; the sqlite archive keeps the full log.
const historyLimit = 100

// State is the persistent aggregate of a swarm: the agent registry, the
// shared context, and the invocation history. One Swarm owns its State;
// there is no cross-process writer protection (last save wins).
type State struct {
	// Agents maps agent name to persona.
	Agents map[string]*models.Agent `json:"agents"`
	// SharedContext is visible to every agent's assembled prompt.
	SharedContext map[string]any `json:"shared_context"`
	// History records every invocation, oldest first.
	History []models.HistoryEntry `json:"history"`
}

// NewState returns an empty State.
func NewState() *State {
	return &State{
		Agents:        make(map[string]*models.Agent),
		SharedContext: make(map[string]any),
	}
}

// LoadState reads a state file from disk. A nonexistent path yields an
// empty default state rather than an error.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	st := NewState()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", path, err)
	}

	if st.Agents == nil {
		st.Agents = make(map[string]*models.Agent)
	}
	if st.SharedContext == nil {
		st.SharedContext = make(map[string]any)
	}
	// The registry key is authoritative for the agent name.
	for name, agent := range st.Agents {
		if agent.Name == "" {
			agent.Name = name
		}
	}

	return st, nil
}

// Save writes the state to disk as indented JSON, truncating history to
// the most recent entries. The in-memory history is left untouched.
func (s *State) Save(path string) error {
	persisted := State{
		Agents:        s.Agents,
		SharedContext: s.SharedContext,
		History:       s.History,
	}
	if len(persisted.History) > historyLimit {
		persisted.History = persisted.History[len(persisted.History)-historyLimit:]
	}

	data, err := json.MarshalIndent(&persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
