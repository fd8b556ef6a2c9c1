package store

import "sync"

// DefaultCapacity mirrors the usual browser localStorage quota.
const DefaultCapacity = 5 << 20

// Memory is an in-process Store bounded by the total size of keys and
// values. A capacity <= 0 means unbounded.
type Memory struct {
	mu       sync.Mutex
	capacity int
	used     int
	data     map[string][]byte
}

func NewMemory(capacity int) *Memory {
	return &Memory{capacity: capacity, data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.used + len(key) + len(value)
	if old, ok := m.data[key]; ok {
		next -= len(key) + len(old)
	}
	if m.capacity > 0 && next > m.capacity {
		return ErrQuotaExceeded
	}
	m.data[key] = append([]byte(nil), value...)
	m.used = next
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.data[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.data, key)
	}
	return nil
}

// Used reports the bytes currently counted against capacity.
func (m *Memory) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used
}
