// ABOUTME: Persistence mirror: read-full / write-full of the attachment list.
// ABOUTME: One JSON array under one fixed key, on top of a pluggable byte slot.

package mirror

import (
	"context"
	"errors"
	"log/slog"

	"github.com/harper/journl/internal/logging"
	"github.com/harper/journl/internal/models"
	"github.com/m-mizutani/goerr/v2"
)

// Mirror keeps a durable snapshot of the attachment list.
type Mirror interface {
	// Load returns the persisted list. It never fails: a missing or
	// unreadable snapshot yields an empty, non-nil slice.
	Load(ctx context.Context) []models.Attachment
	// Save overwrites the snapshot with the complete list.
	Save(ctx context.Context, items []models.Attachment) error
	// Clear removes the snapshot; a later Load returns an empty list.
	Clear(ctx context.Context) error
}

// ErrSlotEmpty is returned by a Slot when the key holds no value.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is raw byte storage addressed by key.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// JSONMirror serialises the full list into a single slot key. Every Save
// rewrites the whole array, so cost grows linearly with the list.
type JSONMirror struct {
	slot Slot
	key  string
}

func New(slot Slot, key string) *JSONMirror {
	return &JSONMirror{slot: slot, key: key}
}

func (m *JSONMirror) Key() string {
	return m.key
}

func (m *JSONMirror) Load(ctx context.Context) []models.Attachment {
	logger := logging.From(ctx).With(slog.String("key", m.key))

	data, err := m.slot.Get(ctx, m.key)
	if errors.Is(err, ErrSlotEmpty) {
		return []models.Attachment{}
	}
	if err != nil {
		logger.Warn("failed to read media snapshot, starting empty", logging.ErrAttr(err))
		return []models.Attachment{}
	}
	if len(data) == 0 {
		return []models.Attachment{}
	}

	items, skipped, err := models.UnmarshalList(data)
	if err != nil {
		logger.Warn("media snapshot is corrupt, discarding", logging.ErrAttr(err))
		return []models.Attachment{}
	}
	for _, e := range skipped {
		logger.Warn("dropping unreadable media record", logging.ErrAttr(e))
	}
	logger.Debug("loaded media snapshot", slog.Int("count", len(items)))
	return items
}

func (m *JSONMirror) Save(ctx context.Context, items []models.Attachment) error {
	data, err := models.MarshalList(items)
	if err != nil {
		return goerr.Wrap(err, "failed to encode media snapshot", goerr.V("key", m.key))
	}
	if err := m.slot.Put(ctx, m.key, data); err != nil {
		return goerr.Wrap(err, "failed to write media snapshot", goerr.V("key", m.key), goerr.V("count", len(items)))
	}
	logging.From(ctx).Debug("saved media snapshot", slog.String("key", m.key), slog.Int("count", len(items)))
	return nil
}

func (m *JSONMirror) Clear(ctx context.Context) error {
	if err := m.slot.Delete(ctx, m.key); err != nil {
		return goerr.Wrap(err, "failed to delete media snapshot", goerr.V("key", m.key))
	}
	logging.From(ctx).Debug("cleared media snapshot", slog.String("key", m.key))
	return nil
}
