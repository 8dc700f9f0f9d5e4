// ABOUTME: MediaStore: the authoritative ordered list of attachments.
// ABOUTME: Every mutation is followed by a full-list save through the mirror.

package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/harper/journl/internal/logging"
	"github.com/harper/journl/internal/mirror"
	"github.com/harper/journl/internal/models"
	"github.com/m-mizutani/goerr/v2"
)

const MinPrefixLen = 6

var (
	ErrNotFound        = errors.New("attachment not found")
	ErrDuplicateID     = errors.New("attachment id already exists")
	ErrPrefixTooShort  = errors.New("prefix must be at least 6 characters")
	ErrAmbiguousPrefix = errors.New("prefix matches multiple attachments")
)

// Store keeps attachments in insertion order. Attachments are immutable;
// there is no update operation.
type Store struct {
	mu     sync.Mutex
	items  []models.Attachment
	mirror mirror.Mirror
}

// New loads the persisted list through m.
func New(ctx context.Context, m mirror.Mirror) *Store {
	return &Store{
		items:  m.Load(ctx),
		mirror: m,
	}
}

// Append adds a to the end of the persisted list and saves it. The list
// is reloaded first so writes from other processes on the same key are
// kept. If the save fails the store is left as it was.
func (s *Store) Append(ctx context.Context, a models.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.mirror.Load(ctx)
	id := a.AttachmentID()
	if indexOf(current, id) >= 0 {
		s.items = current
		return goerr.Wrap(ErrDuplicateID, "cannot append", goerr.V("id", id))
	}

	next := append(current, a)
	if err := s.mirror.Save(ctx, next); err != nil {
		return goerr.Wrap(err, "failed to persist append", goerr.V("id", id))
	}
	s.items = next

	logging.From(ctx).Info("attachment added",
		slog.String("id", id), slog.String("kind", string(a.Kind())), slog.Int("count", len(next)))
	return nil
}

// AppendAll appends each attachment in order, stopping at the first failure.
func (s *Store) AppendAll(ctx context.Context, items []models.Attachment) error {
	for _, a := range items {
		if err := s.Append(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes the attachment with id from the freshly loaded list and
// saves the result.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.mirror.Load(ctx)
	idx := indexOf(current, id)
	if idx < 0 {
		s.items = current
		return goerr.Wrap(ErrNotFound, "cannot remove", goerr.V("id", id))
	}

	next := make([]models.Attachment, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)

	if err := s.mirror.Save(ctx, next); err != nil {
		return goerr.Wrap(err, "failed to persist removal", goerr.V("id", id))
	}
	s.items = next

	logging.From(ctx).Info("attachment removed", slog.String("id", id), slog.Int("count", len(next)))
	return nil
}

// Clear deletes the persisted list.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mirror.Clear(ctx); err != nil {
		return goerr.Wrap(err, "failed to clear attachments")
	}
	removed := len(s.items)
	s.items = []models.Attachment{}

	logging.From(ctx).Info("attachments cleared", slog.Int("removed", removed))
	return nil
}

// Reload replaces the in-memory list with the persisted one. Long-running
// readers call it to pick up writes made by other processes.
func (s *Store) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.mirror.Load(ctx)
}

// List returns a copy of the attachments in insertion order.
func (s *Store) List() []models.Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Attachment, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) Get(id string) (models.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOf(s.items, id)
	if idx < 0 {
		return nil, goerr.Wrap(ErrNotFound, "no such attachment", goerr.V("id", id))
	}
	return s.items[idx], nil
}

// Find resolves an exact id, or a fragment of at least MinPrefixLen
// characters that uniquely starts or ends one id. Suffixes matter because
// time-ordered ids share their leading characters.
func (s *Store) Find(prefix string) (models.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := indexOf(s.items, prefix); idx >= 0 {
		return s.items[idx], nil
	}
	if len(prefix) < MinPrefixLen {
		return nil, ErrPrefixTooShort
	}

	var match models.Attachment
	count := 0
	for _, a := range s.items {
		id := a.AttachmentID()
		if strings.HasPrefix(id, prefix) || strings.HasSuffix(id, prefix) {
			match = a
			count++
		}
	}
	switch count {
	case 0:
		return nil, goerr.Wrap(ErrNotFound, "no attachment matches prefix", goerr.V("prefix", prefix))
	case 1:
		return match, nil
	default:
		return nil, goerr.Wrap(ErrAmbiguousPrefix, "prefix is ambiguous", goerr.V("prefix", prefix), goerr.V("matches", count))
	}
}

func indexOf(items []models.Attachment, id string) int {
	for i, a := range items {
		if a.AttachmentID() == id {
			return i
		}
	}
	return -1
}
