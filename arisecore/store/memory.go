package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store. It mirrors the browser-local storage the
// dashboard originally ran on and backs the engine in tests and in
// database-less development runs.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]map[string]json.RawMessage)}
}

func (m *Memory) Load(_ context.Context, username, key string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	userDocs, ok := m.docs[username]
	if !ok {
		return nil, nil
	}
	raw, ok := userDocs[key]
	if !ok {
		return nil, nil
	}

	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, nil
}

func (m *Memory) Persist(_ context.Context, username, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	userDocs, ok := m.docs[username]
	if !ok {
		userDocs = make(map[string]json.RawMessage)
		m.docs[username] = userDocs
	}

	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	userDocs[key] = stored
	return nil
}

func (m *Memory) Remove(_ context.Context, username, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if userDocs, ok := m.docs[username]; ok {
		delete(userDocs, key)
	}
	return nil
}
