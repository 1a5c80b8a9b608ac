package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"post-stats-pipeline/internal/model"
)

// Entry is one write in a KVStore.Apply batch. Delete removes the key
// instead of writing Value.
type Entry struct {
	Key    string
	Value  []byte
	Delete bool
}

// KVStore is a capacity-bounded key-value store.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
	Apply(ctx context.Context, entries []Entry) error
}

const (
	kvSelectSQL = `SELECT value FROM kv_entries WHERE key = ?`
	kvUpsertSQL = `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	kvDeleteSQL = `DELETE FROM kv_entries WHERE key = ?`
	kvClearSQL  = `DELETE FROM kv_entries`
	kvKeysSQL   = `SELECT key FROM kv_entries ORDER BY key`
)

// SQLKVStore keeps entries in the kv_entries table.
type SQLKVStore struct {
	db           *DB
	maxValueSize int64
}

// NewKVStore builds a store that rejects values over maxValueSize bytes.
// A non-positive limit disables the check.
func NewKVStore(db *DB, maxValueSize int64) *SQLKVStore {
	return &SQLKVStore{db: db, maxValueSize: maxValueSize}
}

func (s *SQLKVStore) checkSize(key string, value []byte) error {
	if s.maxValueSize > 0 && int64(len(value)) > s.maxValueSize {
		return model.NewPersistenceError("set", key,
			fmt.Errorf("%w: %d bytes exceeds limit of %d", model.ErrQuotaExceeded, len(value), s.maxValueSize))
	}
	return nil
}

func (s *SQLKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind(kvSelectSQL), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, model.NewPersistenceError("get", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLKVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.checkSize(key, value); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(kvUpsertSQL), key, string(value), time.Now().UTC()); err != nil {
		return model.NewPersistenceError("set", key, err)
	}
	return nil
}

func (s *SQLKVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(kvDeleteSQL), key); err != nil {
		return model.NewPersistenceError("remove", key, err)
	}
	return nil
}

func (s *SQLKVStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, kvClearSQL); err != nil {
		return model.NewPersistenceError("clear", "", err)
	}
	return nil
}

func (s *SQLKVStore) Keys(ctx context.Context) ([]string, error) {
	keys := []string{}
	if err := s.db.SelectContext(ctx, &keys, kvKeysSQL); err != nil {
		return nil, model.NewPersistenceError("keys", "", err)
	}
	return keys, nil
}

// Apply writes every entry in one transaction. Either all entries commit or
// none do.
func (s *SQLKVStore) Apply(ctx context.Context, entries []Entry) error {
	for _, e := range entries {
		if !e.Delete {
			if err := s.checkSize(e.Key, e.Value); err != nil {
				return err
			}
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.NewPersistenceError("begin", "", err)
	}
	defer tx.Rollback()

	upsert := s.db.Rebind(kvUpsertSQL)
	remove := s.db.Rebind(kvDeleteSQL)
	now := time.Now().UTC()

	for _, e := range entries {
		if e.Delete {
			_, err = tx.ExecContext(ctx, remove, e.Key)
		} else {
			_, err = tx.ExecContext(ctx, upsert, e.Key, string(e.Value), now)
		}
		if err != nil {
			return model.NewPersistenceError("apply", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return model.NewPersistenceError("commit", "", err)
	}
	return nil
}
