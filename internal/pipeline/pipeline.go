// Package pipeline runs imports end to end: ingest, validate, dedupe, map,
// aggregate and persist.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"post-stats-pipeline/internal/accessor"
	"post-stats-pipeline/internal/aggregate"
	"post-stats-pipeline/internal/dedupe"
	"post-stats-pipeline/internal/mapping"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/internal/store"
	"post-stats-pipeline/pkg/utils"
)

// ErrFileNotFound is returned when a file identifier or index is unknown.
var ErrFileNotFound = errors.New("file not found")

// Repository is the persistence the coordinator needs.
type Repository interface {
	SaveDataset(ctx context.Context, ds store.Dataset) error
	LoadPosts(ctx context.Context) ([]model.GenericRecord, error)
	LoadAccounts(ctx context.Context) ([]model.GenericRecord, error)
	LoadFiles(ctx context.Context) ([]model.FileMetadata, error)
	Clear(ctx context.Context) error
	Usage(ctx context.Context) (model.StorageUsage, error)
}

// ImportOptions controls one import call.
type ImportOptions struct {
	// FileName is the uploaded file's name.
	FileName string
	// Label replaces FileName in the file list when set.
	Label string
	// Merge keeps the existing dataset and adds to it.
	Merge bool
	// Force imports even when required columns are missing.
	Force bool
}

// Coordinator is not safe for concurrent imports against one dataset;
// callers serialize Import, RemoveFile and ClearAll.
type Coordinator struct {
	repo     Repository
	resolver *mapping.Resolver
	now      func() time.Time

	mu        sync.Mutex
	lastStamp int64
}

func NewCoordinator(repo Repository, resolver *mapping.Resolver) *Coordinator {
	return &Coordinator{repo: repo, resolver: resolver, now: time.Now}
}

// Resolver returns the column mapping resolver the coordinator imports with.
func (c *Coordinator) Resolver() *mapping.Resolver {
	return c.resolver
}

// newFileIdentifier derives a batch id from the file name and the current
// time in milliseconds. Ids are unique per coordinator even within one
// millisecond.
func (c *Coordinator) newFileIdentifier(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	stamp := c.now().UnixMilli()
	if stamp <= c.lastStamp {
		stamp = c.lastStamp + 1
	}
	c.lastStamp = stamp

	base := utils.SanitizeIdentifier(name)
	if base == "" {
		base = "import"
	}
	return fmt.Sprintf("%s_%d", base, stamp)
}

func (c *Coordinator) accessor(ctx context.Context) *accessor.Accessor {
	return accessor.FromResolver(ctx, c.resolver)
}

// Import parses csv, deduplicates it against the existing posts (when
// merging), maps the survivors to internal fields, recomputes the account
// rollups from the full post set and commits everything in one save.
func (c *Coordinator) Import(ctx context.Context, csv []byte, opts ImportOptions) (*model.ImportResult, error) {
	start := c.now()
	log.Printf("📥 Import: starting %q (merge=%v, force=%v)", opts.FileName, opts.Merge, opts.Force)

	parsed, err := ParseCSV(ctx, csv)
	if err != nil {
		log.Printf("❌ Import: %v", err)
		return nil, err
	}

	if _, err := CheckRequiredColumns(parsed.Headers, opts.Force); err != nil {
		return nil, err
	}

	fileID := c.newFileIdentifier(opts.FileName)
	acc := c.accessor(ctx)
	mapRecord := c.resolver.GetMapping(ctx).Mapper(parsed.Headers...)

	var existing []model.GenericRecord
	var files []model.FileMetadata
	if opts.Merge {
		if existing, err = c.repo.LoadPosts(ctx); err != nil {
			return nil, err
		}
		if files, err = c.repo.LoadFiles(ctx); err != nil {
			return nil, err
		}
		log.Printf("🔗 Import: merging with %d existing posts from %d files", len(existing), len(files))
	}

	accountCount := aggregate.CountUniqueAccounts(acc, parsed.Rows)

	deduped := dedupe.Dedupe(acc, parsed.Rows, existing, fileID)
	log.Printf("🧮 Dedupe: %d rows in, %d kept, %d duplicates", len(parsed.Rows), len(deduped.Filtered), deduped.Stats.Duplicates)

	newPosts := make([]model.GenericRecord, 0, len(deduped.Filtered))
	for _, raw := range deduped.Filtered {
		rec := mapRecord(raw)
		rec[model.FileIdentifierKey] = fileID
		newPosts = append(newPosts, rec)
	}

	posts := make([]model.GenericRecord, 0, len(existing)+len(newPosts))
	posts = append(posts, existing...)
	posts = append(posts, newPosts...)

	accounts := aggregate.ByAccount(acc, posts, nil)
	dateRange := aggregate.DateRange(acc, posts)
	log.Printf("📊 Aggregation: %d posts across %d accounts", len(posts), len(accounts))

	label := strings.TrimSpace(opts.Label)
	if label == "" {
		label = opts.FileName
	}
	files = append(files, model.FileMetadata{
		Filename:          label,
		OriginalFileName:  opts.FileName,
		FileIdentifier:    fileID,
		RowCount:          len(parsed.Rows),
		DuplicatesRemoved: deduped.Stats.Duplicates,
		AccountCount:      accountCount,
		DateRange:         aggregate.DateRange(acc, newPosts),
		UploadedAt:        start.UTC(),
	})

	if err := c.repo.SaveDataset(ctx, store.Dataset{Accounts: accounts, Posts: posts, Files: files}); err != nil {
		log.Printf("❌ Import: not committed: %v", err)
		return nil, err
	}

	log.Printf("🏁 Import: %q committed as %s in %v", opts.FileName, fileID, time.Since(start))
	return &model.ImportResult{
		AccountViewData: accounts,
		PostViewData:    posts,
		RowCount:        len(posts),
		Meta: model.ImportMeta{
			ProcessedAt:    start.UTC(),
			Stats:          deduped.Stats,
			DateRange:      dateRange,
			IsMergedData:   opts.Merge,
			Filename:       label,
			FileIdentifier: fileID,
			Warnings:       parsed.Warnings,
		},
	}, nil
}

// Files lists the imported files in upload order.
func (c *Coordinator) Files(ctx context.Context) ([]model.FileMetadata, error) {
	return c.repo.LoadFiles(ctx)
}

// RemoveFile drops one import batch and recomputes the account rollups from
// the remaining posts. Removing the last file clears the dataset.
func (c *Coordinator) RemoveFile(ctx context.Context, fileIdentifier string) error {
	files, err := c.repo.LoadFiles(ctx)
	if err != nil {
		return err
	}

	remaining := make([]model.FileMetadata, 0, len(files))
	found := false
	for _, f := range files {
		if f.FileIdentifier == fileIdentifier {
			found = true
			continue
		}
		remaining = append(remaining, f)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrFileNotFound, fileIdentifier)
	}

	if len(remaining) == 0 {
		log.Printf("🗑️ Files: removed last file %s, clearing dataset", fileIdentifier)
		return c.repo.Clear(ctx)
	}

	posts, err := c.repo.LoadPosts(ctx)
	if err != nil {
		return err
	}
	kept := make([]model.GenericRecord, 0, len(posts))
	for _, rec := range posts {
		if utils.String(rec[model.FileIdentifierKey]) != fileIdentifier {
			kept = append(kept, rec)
		}
	}

	acc := c.accessor(ctx)
	accounts := aggregate.ByAccount(acc, kept, nil)
	if err := c.repo.SaveDataset(ctx, store.Dataset{Accounts: accounts, Posts: kept, Files: remaining}); err != nil {
		return err
	}

	log.Printf("🗑️ Files: removed %s (%d posts dropped, %d remain)", fileIdentifier, len(posts)-len(kept), len(kept))
	return nil
}

// RemoveFileAt removes the file at index in the file list.
func (c *Coordinator) RemoveFileAt(ctx context.Context, index int) error {
	files, err := c.repo.LoadFiles(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(files) {
		return fmt.Errorf("%w: index %d of %d", ErrFileNotFound, index, len(files))
	}
	return c.RemoveFile(ctx, files[index].FileIdentifier)
}

// ClearAll removes every post, rollup and file entry. The mapping stays.
func (c *Coordinator) ClearAll(ctx context.Context) error {
	return c.repo.Clear(ctx)
}

// AccountView recomputes the account table for the selected fields.
func (c *Coordinator) AccountView(ctx context.Context, fields []string) (model.AccountView, error) {
	posts, err := c.repo.LoadPosts(ctx)
	if err != nil {
		return model.AccountView{}, err
	}
	return aggregate.View(c.accessor(ctx), posts, fields), nil
}

// PostTypeView summarizes posts per post type, largest group first.
func (c *Coordinator) PostTypeView(ctx context.Context, account string) ([]model.PostTypeSummary, error) {
	posts, err := c.repo.LoadPosts(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.SortPostTypes(aggregate.ByPostType(c.accessor(ctx), posts, account)), nil
}

// PostView returns the post records with both engagement totals resolved.
func (c *Coordinator) PostView(ctx context.Context) ([]model.GenericRecord, error) {
	posts, err := c.repo.LoadPosts(ctx)
	if err != nil {
		return nil, err
	}

	acc := c.accessor(ctx)
	out := make([]model.GenericRecord, 0, len(posts))
	for _, rec := range posts {
		row := rec.Clone()
		row[model.FieldEngagementTotal] = acc.GetValue(rec, model.FieldEngagementTotal)
		row[model.FieldEngagementTotalExtended] = acc.GetValue(rec, model.FieldEngagementTotalExtended)
		out = append(out, row)
	}
	return out, nil
}

// AccountNames lists the account filter choices.
func (c *Coordinator) AccountNames(ctx context.Context) ([]string, error) {
	posts, err := c.repo.LoadPosts(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.UniqueAccountNames(c.accessor(ctx), posts), nil
}

// Usage reports the storage estimate of the current dataset.
func (c *Coordinator) Usage(ctx context.Context) (model.StorageUsage, error) {
	return c.repo.Usage(ctx)
}
