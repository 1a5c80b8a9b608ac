package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"post-stats-pipeline/internal/model"
)

// ErrBlobNotFound is returned when a referenced blob is missing.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore holds bulk payloads that do not fit a key-value entry.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

const (
	blobUpsertSQL = `INSERT INTO blobs (key, data, created_at) VALUES (?, ?, ?) ON CONFLICT (key) DO UPDATE SET data = excluded.data, created_at = excluded.created_at`
	blobSelectSQL = `SELECT data FROM blobs WHERE key = ?`
	blobDeleteSQL = `DELETE FROM blobs WHERE key = ?`
	blobClearSQL  = `DELETE FROM blobs`
)

// SQLBlobStore keeps blobs in the blobs table of the same database.
type SQLBlobStore struct {
	db *DB
}

func NewSQLBlobStore(db *DB) *SQLBlobStore {
	return &SQLBlobStore{db: db}
}

func (s *SQLBlobStore) Put(ctx context.Context, key string, data []byte) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(blobUpsertSQL), key, string(data), time.Now().UTC()); err != nil {
		return model.NewPersistenceError("put blob", key, err)
	}
	return nil
}

func (s *SQLBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data string
	err := s.db.GetContext(ctx, &data, s.db.Rebind(blobSelectSQL), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, model.NewPersistenceError("get blob", key, err)
	}
	return []byte(data), true, nil
}

func (s *SQLBlobStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(blobDeleteSQL), key); err != nil {
		return model.NewPersistenceError("delete blob", key, err)
	}
	return nil
}

func (s *SQLBlobStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, blobClearSQL); err != nil {
		return model.NewPersistenceError("clear blobs", "", err)
	}
	return nil
}
