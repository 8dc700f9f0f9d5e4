// ABOUTME: Key/value operations on the kv table.
// ABOUTME: Whole values are read and overwritten; there are no partial updates.

package db

import (
	"context"
	"database/sql"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

func GetValue(ctx context.Context, db *sql.DB, key string) ([]byte, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func PutValue(ctx context.Context, db *sql.DB, key string, value []byte) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value),
	)
	return err
}

func DeleteValue(ctx context.Context, db *sql.DB, key string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrKeyNotFound
	}
	return nil
}
