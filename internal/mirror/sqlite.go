// ABOUTME: SQLite slot backed by the kv table.
// ABOUTME: Each save upserts one row keyed by the storage key.

package mirror

import (
	"context"
	"database/sql"
	"errors"

	"github.com/harper/journl/internal/db"
)

type SQLiteSlot struct {
	conn *sql.DB
}

func NewSQLiteSlot(conn *sql.DB) *SQLiteSlot {
	return &SQLiteSlot{conn: conn}
}

func (s *SQLiteSlot) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := db.GetValue(ctx, s.conn, key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, ErrSlotEmpty
	}
	return v, err
}

func (s *SQLiteSlot) Put(ctx context.Context, key string, value []byte) error {
	return db.PutValue(ctx, s.conn, key, value)
}

func (s *SQLiteSlot) Delete(ctx context.Context, key string) error {
	if err := db.DeleteValue(ctx, s.conn, key); err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return err
	}
	return nil
}
