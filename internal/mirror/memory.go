// ABOUTME: In-memory slot for tests and ephemeral sessions.
// ABOUTME: Values are copied in and out so callers cannot alias stored bytes.

package mirror

import (
	"context"
	"sync"
)

type MemorySlot struct {
	mu     sync.Mutex
	values map[string][]byte
	// PutErr, when set, is returned by every Put.
	PutErr error
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string][]byte)}
}

func (s *MemorySlot) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

func (s *MemorySlot) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemorySlot) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// NewMemory returns a mirror backed by a fresh MemorySlot.
func NewMemory(key string) (*JSONMirror, *MemorySlot) {
	slot := NewMemorySlot()
	return New(slot, key), slot
}
