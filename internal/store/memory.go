package store

import (
	"sync"

	"jira-cli/internal/model"
)

// MemoryDatabase keeps the state in memory. Reads and writes deep-copy so
// callers cannot alias the stored state. Setting WriteErr makes every Write
// fail with a *WriteError wrapping it, leaving the stored state untouched.
type MemoryDatabase struct {
	mu       sync.Mutex
	state    *model.DBState
	WriteErr error
	Writes   int
}

func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{state: model.NewDBState()}
}

func (m *MemoryDatabase) Read() (*model.DBState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		m.state = model.NewDBState()
	}
	return m.state.Clone(), nil
}

func (m *MemoryDatabase) Write(st *model.DBState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return &WriteError{Path: ":memory:", Err: m.WriteErr}
	}
	m.state = st.Clone()
	m.Writes++
	return nil
}
