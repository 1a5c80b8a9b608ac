package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/pkg/utils"
)

const (
	// DefaultInlinePostLimit is the largest post payload kept in the KV store.
	DefaultInlinePostLimit = 5_000_000

	// bulkCapacity is the capacity the post payload is measured against.
	bulkCapacity = 200 * 1024 * 1024

	usageWarningPercent  = 70
	usageCriticalPercent = 90
)

// Dataset is everything one import or file removal commits together.
type Dataset struct {
	Accounts []model.GenericRecord
	Posts    []model.GenericRecord
	Files    []model.FileMetadata
}

// blobPointer replaces the inline post payload when posts live in the blob store.
type blobPointer struct {
	BlobKey string `json:"blob_key"`
}

// Repository persists the dataset under fixed logical keys.
type Repository struct {
	kv              KVStore
	blobs           BlobStore
	inlinePostLimit int64
	maxValueSize    int64
}

func NewRepository(kv KVStore, blobs BlobStore, inlinePostLimit, maxValueSize int64) *Repository {
	if inlinePostLimit <= 0 {
		inlinePostLimit = DefaultInlinePostLimit
	}
	return &Repository{kv: kv, blobs: blobs, inlinePostLimit: inlinePostLimit, maxValueSize: maxValueSize}
}

func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

// SaveDataset commits accounts, posts and file metadata together. Large post
// payloads go to the blob store first; if the key-value transaction then
// fails the fresh blob is removed, so nothing references uncommitted posts.
func (r *Repository) SaveDataset(ctx context.Context, ds Dataset) error {
	accountsRaw, err := marshalList(ds.Accounts)
	if err != nil {
		return model.NewPersistenceError("encode", model.KeyAccountView, err)
	}
	postsRaw, err := marshalList(ds.Posts)
	if err != nil {
		return model.NewPersistenceError("encode", model.KeyPostView, err)
	}
	filesRaw, err := marshalList(ds.Files)
	if err != nil {
		return model.NewPersistenceError("encode", model.KeyFileMetadata, err)
	}

	oldBlob, err := r.currentBlobKey(ctx)
	if err != nil {
		return err
	}

	postValue := postsRaw
	newBlob := ""
	if int64(len(postsRaw)) > r.inlinePostLimit {
		newBlob = fmt.Sprintf("posts/%s.json", uuid.New().String())
		if err := r.blobs.Put(ctx, newBlob, postsRaw); err != nil {
			return model.NewPersistenceError("put blob", newBlob, err)
		}
		postValue, _ = json.Marshal(blobPointer{BlobKey: newBlob})
		log.Printf("🪣 Store: %s of posts moved to blob %s", humanize.Bytes(uint64(len(postsRaw))), newBlob)
	}

	entries := []Entry{
		{Key: model.KeyAccountView, Value: accountsRaw},
		{Key: model.KeyPostView, Value: postValue},
		{Key: model.KeyFileMetadata, Value: filesRaw},
	}
	if err := r.kv.Apply(ctx, entries); err != nil {
		if newBlob != "" {
			if derr := r.blobs.Delete(ctx, newBlob); derr != nil {
				log.Printf("⚠️ Store: could not remove orphaned blob %s: %v", newBlob, derr)
			}
		}
		return model.NewPersistenceError("save dataset", model.KeyPostView, err)
	}

	if oldBlob != "" && oldBlob != newBlob {
		if err := r.blobs.Delete(ctx, oldBlob); err != nil {
			log.Printf("⚠️ Store: could not remove previous blob %s: %v", oldBlob, err)
		}
	}

	log.Printf("💾 Store: saved %d posts, %d accounts, %d files", len(ds.Posts), len(ds.Accounts), len(ds.Files))
	return nil
}

// pointerFrom returns the blob key when raw is a blob pointer.
func pointerFrom(raw []byte) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}
	var p blobPointer
	if err := json.Unmarshal(trimmed, &p); err != nil || p.BlobKey == "" {
		return "", false
	}
	return p.BlobKey, true
}

func (r *Repository) currentBlobKey(ctx context.Context) (string, error) {
	raw, found, err := r.kv.Get(ctx, model.KeyPostView)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	key, _ := pointerFrom(raw)
	return key, nil
}

// decodeRecords keeps numbers as json.Number so long identifiers survive.
func decodeRecords(raw []byte) ([]model.GenericRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var records []model.GenericRecord
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.GenericRecord{}
	}
	return records, nil
}

// LoadPosts returns the stored post records, following a blob pointer when
// the posts live in the blob store.
func (r *Repository) LoadPosts(ctx context.Context) ([]model.GenericRecord, error) {
	raw, found, err := r.kv.Get(ctx, model.KeyPostView)
	if err != nil {
		return nil, err
	}
	if !found {
		return []model.GenericRecord{}, nil
	}

	if key, ok := pointerFrom(raw); ok {
		data, found, err := r.blobs.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, model.NewPersistenceError("load", key, ErrBlobNotFound)
		}
		raw = data
	}

	posts, err := decodeRecords(raw)
	if err != nil {
		return nil, model.NewPersistenceError("decode", model.KeyPostView, err)
	}
	return posts, nil
}

func (r *Repository) LoadAccounts(ctx context.Context) ([]model.GenericRecord, error) {
	raw, found, err := r.kv.Get(ctx, model.KeyAccountView)
	if err != nil {
		return nil, err
	}
	if !found {
		return []model.GenericRecord{}, nil
	}
	accounts, err := decodeRecords(raw)
	if err != nil {
		return nil, model.NewPersistenceError("decode", model.KeyAccountView, err)
	}
	return accounts, nil
}

func (r *Repository) LoadFiles(ctx context.Context) ([]model.FileMetadata, error) {
	raw, found, err := r.kv.Get(ctx, model.KeyFileMetadata)
	if err != nil {
		return nil, err
	}
	files := []model.FileMetadata{}
	if !found {
		return files, nil
	}
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, model.NewPersistenceError("decode", model.KeyFileMetadata, err)
	}
	return files, nil
}

// Clear removes the dataset and every blob. The column mapping is kept.
func (r *Repository) Clear(ctx context.Context) error {
	entries := []Entry{
		{Key: model.KeyAccountView, Delete: true},
		{Key: model.KeyPostView, Delete: true},
		{Key: model.KeyFileMetadata, Delete: true},
	}
	if err := r.kv.Apply(ctx, entries); err != nil {
		return model.NewPersistenceError("clear", "", err)
	}
	if err := r.blobs.Clear(ctx); err != nil {
		return model.NewPersistenceError("clear blobs", "", err)
	}
	log.Println("🧹 Store: dataset cleared")
	return nil
}

func (r *Repository) valueSize(ctx context.Context, key string) (int64, []byte, error) {
	raw, found, err := r.kv.Get(ctx, key)
	if err != nil || !found {
		return 0, nil, err
	}
	return int64(len(raw)), raw, nil
}

// Usage estimates how much of the store's capacity the dataset uses.
func (r *Repository) Usage(ctx context.Context) (model.StorageUsage, error) {
	var usage model.StorageUsage

	postSize, postRaw, err := r.valueSize(ctx, model.KeyPostView)
	if err != nil {
		return usage, err
	}
	if key, ok := pointerFrom(postRaw); ok {
		data, found, err := r.blobs.Get(ctx, key)
		if err != nil {
			return usage, err
		}
		if found {
			postSize = int64(len(data))
		}
		usage.PostsInBlob = true
	}

	accountSize, _, err := r.valueSize(ctx, model.KeyAccountView)
	if err != nil {
		return usage, err
	}
	metaSize, _, err := r.valueSize(ctx, model.KeyFileMetadata)
	if err != nil {
		return usage, err
	}

	usage.PostViewSize = postSize
	usage.AccountViewSize = accountSize
	usage.MetadataSize = metaSize
	usage.TotalSize = postSize + accountSize + metaSize
	usage.TotalSizeHuman = humanize.Bytes(uint64(usage.TotalSize))

	percent := float64(postSize) / bulkCapacity * 100
	if r.maxValueSize > 0 {
		if p := float64(accountSize) / float64(r.maxValueSize) * 100; p > percent {
			percent = p
		}
	}
	usage.PercentUsed = utils.RoundTo(percent, 1)

	switch {
	case usage.PercentUsed >= usageCriticalPercent:
		usage.Status = model.UsageCritical
	case usage.PercentUsed >= usageWarningPercent:
		usage.Status = model.UsageWarning
	default:
		usage.Status = model.UsageSafe
	}
	usage.IsNearLimit = usage.PercentUsed >= usageWarningPercent
	usage.CanAddMoreData = usage.PercentUsed < usageCriticalPercent
	return usage, nil
}
