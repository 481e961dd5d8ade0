package kv

import (
	"context"
	"sync"
)

// Memory keeps every device's keys in process memory.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]string)}
}

func (m *Memory) Scope(deviceID string) Store {
	return &memoryScope{parent: m, deviceID: deviceID}
}

// Forget drops everything held for a device.
func (m *Memory) Forget(deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, deviceID)
}

type memoryScope struct {
	parent   *Memory
	deviceID string
}

func (s *memoryScope) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.parent.mu.RLock()
	defer s.parent.mu.RUnlock()
	value, ok := s.parent.data[s.deviceID][key]
	return value, ok, nil
}

func (s *memoryScope) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	bucket, ok := s.parent.data[s.deviceID]
	if !ok {
		bucket = make(map[string]string)
		s.parent.data[s.deviceID] = bucket
	}
	bucket[key] = value
	return nil
}

func (s *memoryScope) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.parent.mu.Lock()
	defer s.parent.mu.Unlock()
	delete(s.parent.data[s.deviceID], key)
	return nil
}
