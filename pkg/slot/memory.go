package slot

import "sync"

// Memory keeps the payload in RAM only. It is the degraded "no durable
// storage" mode: state lives for the life of the process and is lost on
// restart. Also handy in tests.
type Memory struct {
	mu      sync.Mutex
	payload []byte
	written bool
}

// NewMemory returns an empty in-memory slot.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.written {
		return nil, false, nil
	}
	out := make([]byte, len(m.payload))
	copy(out, m.payload)
	return out, true, nil
}

func (m *Memory) Save(payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = make([]byte, len(payload))
	copy(m.payload, payload)
	m.written = true
	return nil
}
