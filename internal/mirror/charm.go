// ABOUTME: Charm KV slot: the snapshot lives in a local charm database.
// ABOUTME: Only local kv reads and writes are used; nothing is synced.

package mirror

import (
	"context"
	"errors"

	"github.com/harper/journl/internal/charm"
)

type CharmSlot struct {
	client *charm.Client
}

func NewCharmSlot(client *charm.Client) *CharmSlot {
	return &CharmSlot{client: client}
}

func (s *CharmSlot) Get(_ context.Context, key string) ([]byte, error) {
	v, err := s.client.Get([]byte(key))
	if errors.Is(err, charm.ErrKeyNotFound) {
		return nil, ErrSlotEmpty
	}
	return v, err
}

func (s *CharmSlot) Put(_ context.Context, key string, value []byte) error {
	return s.client.Set([]byte(key), value)
}

func (s *CharmSlot) Delete(_ context.Context, key string) error {
	if err := s.client.Delete([]byte(key)); err != nil && !errors.Is(err, charm.ErrKeyNotFound) {
		return err
	}
	return nil
}
