package store

import "sync"

// MemoryStore keeps session topics in process memory. State does not survive
// a restart; that matches the lifetime of the chat session it mirrors.
type MemoryStore struct {
	mu     sync.RWMutex
	topics map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{topics: make(map[string]string)}
}

func (m *MemoryStore) LastTopic(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topics[key], nil
}

func (m *MemoryStore) SetLastTopic(key, topic string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics[key] = topic
	return nil
}
