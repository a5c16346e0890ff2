package session

import (
	"encoding/json"
	"os"
	"time"
)

// Entry is one recorded module run within a session.
type Entry struct {
	Time    time.Time `json:"time"`
	RunID   string    `json:"run_id"`
	Module  string    `json:"module"`
	Summary string    `json:"summary"`
}

// State accumulates session history across invocations.
type State struct {
	RunCount  int       `json:"run_count"`
	Entries   []Entry   `json:"entries"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoadState reads the session state from a JSON file. Returns a zero state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the session state to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
