package session

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Manager accumulates per-run report blocks and persists them between
// invocations, so a classroom session spanning several program runs can
// still export one combined report.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string) (*Manager, error) {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{state: state, filePath: filePath}, nil
}

// Append records one module run and saves the state.
func (m *Manager) Append(runID, module, summary string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.RunCount++
	m.state.Entries = append(m.state.Entries, Entry{
		Time:    time.Now(),
		RunID:   runID,
		Module:  module,
		Summary: summary,
	})

	if err := SaveState(m.filePath, m.state); err != nil {
		log.Printf("[ERROR] failed to save session state: %v", err)
	}
}

// Report renders the whole session as a plain-text report.
func (m *Manager) Report() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder
	b.WriteString("===== Information-economics simulation report =====\n\n")
	for i, e := range m.state.Entries {
		b.WriteString(fmt.Sprintf("[%d] %s | %s | run %s\n", i+1,
			e.Time.Format("2006-01-02 15:04:05"), e.Module, e.RunID))
		b.WriteString(e.Summary)
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("total runs this session: %d\n", m.state.RunCount))
	return b.String()
}

// ExportText writes the session report to a text file.
func (m *Manager) ExportText(path string) error {
	return os.WriteFile(path, []byte(m.Report()), 0644)
}
