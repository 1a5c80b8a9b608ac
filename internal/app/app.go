// Package app wires configuration, storage and the import coordinator
// together for the service and the CLI.
package app

import (
	"context"
	"fmt"
	"log"

	"post-stats-pipeline/internal/config"
	"post-stats-pipeline/internal/mapping"
	"post-stats-pipeline/internal/pipeline"
	"post-stats-pipeline/internal/store"
)

type App struct {
	Config      *config.Config
	DB          *store.DB
	KV          *store.SQLKVStore
	Blobs       store.BlobStore
	Repository  *store.Repository
	Resolver    *mapping.Resolver
	Coordinator *pipeline.Coordinator
}

// NewBlobStore picks the blob backend the configuration names.
func NewBlobStore(ctx context.Context, cfg *config.Config, db *store.DB) (store.BlobStore, error) {
	if cfg.Storage.BlobBackend == config.BlobBackendMinIO {
		blobs, err := store.NewMinIOBlobStore(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("minio blob store: %w", err)
		}
		return blobs, nil
	}
	return store.NewSQLBlobStore(db), nil
}

// New opens the database and builds every collaborator.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := store.Open(ctx, cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	blobs, err := NewBlobStore(ctx, cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	kv := store.NewKVStore(db, cfg.Storage.MaxValueSize)
	repo := store.NewRepository(kv, blobs, cfg.Storage.InlinePostLimit, cfg.Storage.MaxValueSize)
	resolver := mapping.NewResolver(kv, nil)

	log.Printf("🧩 App: %s database, %s blob backend", cfg.DB.Driver, cfg.Storage.BlobBackend)
	return &App{
		Config:      cfg,
		DB:          db,
		KV:          kv,
		Blobs:       blobs,
		Repository:  repo,
		Resolver:    resolver,
		Coordinator: pipeline.NewCoordinator(repo, resolver),
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
