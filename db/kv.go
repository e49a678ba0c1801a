// ABOUTME: SQLite-backed key/value store implementing the hub storage backend
// ABOUTME: One row per key; writes are upserts stamped with updated_at
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/lifehub/store"
)

// KV stores hub state in the kv table.
type KV struct {
	db *sql.DB
}

var _ store.KV = (*KV)(nil)

// NewKV wraps an open, migrated database.
func NewKV(database *sql.DB) *KV {
	return &KV{db: database}
}

// OpenKV opens the database file at path and returns a ready backend.
func OpenKV(path string) (*KV, error) {
	database, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	return NewKV(database), nil
}

func (k *KV) Close() error {
	return k.db.Close()
}

func (k *KV) Get(key []byte) ([]byte, error) {
	var value []byte
	err := k.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (k *KV) Set(key, value []byte) error {
	_, err := k.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(key), value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(key []byte) error {
	if _, err := k.db.Exec(`DELETE FROM kv WHERE key = ?`, string(key)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys returns every stored key in lexical order.
func (k *KV) Keys() ([][]byte, error) {
	rows, err := k.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys [][]byte
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, []byte(key))
	}
	return keys, rows.Err()
}

// UpdatedAt reports when key was last written.
func (k *KV) UpdatedAt(key string) (time.Time, error) {
	var ts time.Time
	err := k.db.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, store.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read timestamp for %s: %w", key, err)
	}
	return ts, nil
}
