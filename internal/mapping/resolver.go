package mapping

import (
	"context"
	"encoding/json"
	"log"

	"post-stats-pipeline/internal/model"
)

// Store is the slice of the key-value store the resolver needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Resolver owns the current external -> internal mapping.
type Resolver struct {
	store Store
	cache *Cache
}

// NewResolver builds a resolver over store. A nil cache gets a private one.
func NewResolver(store Store, cache *Cache) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{store: store, cache: cache}
}

// GetMapping returns the persisted user mapping, or the defaults when none is
// stored. The result is cached until ClearCache.
func (r *Resolver) GetMapping(ctx context.Context) Mapping {
	if m, ok := r.cache.Mapping(); ok {
		return m.Clone()
	}

	m, cacheable := r.load(ctx)
	if cacheable {
		r.cache.Store(m)
	}
	return m.Clone()
}

func (r *Resolver) load(ctx context.Context) (Mapping, bool) {
	raw, found, err := r.store.Get(ctx, model.KeyColumnMappings)
	if err != nil {
		// Not cached so the next read retries the store.
		log.Printf("⚠️ Mapping: could not read stored mapping, using defaults: %v", err)
		return DefaultMapping(), false
	}
	if !found || len(raw) == 0 {
		return DefaultMapping(), true
	}

	var m Mapping
	if err := json.Unmarshal(raw, &m); err != nil || len(m) == 0 {
		log.Printf("⚠️ Mapping: stored mapping unreadable, using defaults: %v", err)
		return DefaultMapping(), true
	}
	return m, true
}

// GetInverseMapping returns internal -> external for the current mapping.
func (r *Resolver) GetInverseMapping(ctx context.Context) Mapping {
	if inv, ok := r.cache.Inverse(); ok {
		return inv.Clone()
	}
	return r.GetMapping(ctx).Inverse()
}

// SaveMapping validates and persists m. A rejected mapping or a failed write
// leaves the previous mapping in effect.
func (r *Resolver) SaveMapping(ctx context.Context, m Mapping) error {
	if len(m) == 0 {
		return &model.MappingConflictError{Reason: "mapping must contain at least one column"}
	}
	if err := m.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return model.NewPersistenceError("encode", model.KeyColumnMappings, err)
	}
	if err := r.store.Set(ctx, model.KeyColumnMappings, raw); err != nil {
		return model.NewPersistenceError("save", model.KeyColumnMappings, err)
	}

	r.ClearCache()
	log.Printf("🗂️ Mapping: saved %d column mappings", len(m))
	return nil
}

// ResetMapping stores the built-in defaults.
func (r *Resolver) ResetMapping(ctx context.Context) error {
	return r.SaveMapping(ctx, DefaultMapping())
}

// ClearCache drops the cached mapping and inverse.
func (r *Resolver) ClearCache() {
	r.cache.Invalidate()
}

// ValidationResult is the outcome of a required-column check.
type ValidationResult struct {
	IsValid        bool                  `json:"isValid"`
	MissingColumns []model.MissingColumn `json:"missingColumns"`
}

// Err returns a *model.ValidationError when columns are missing.
func (v ValidationResult) Err() error {
	if v.IsValid {
		return nil
	}
	return &model.ValidationError{Missing: v.MissingColumns}
}

// ValidateRequiredColumns checks headers against the built-in default
// columns. The user mapping does not change which columns are required.
func (r *Resolver) ValidateRequiredColumns(headers []string) ValidationResult {
	return ValidateRequiredColumns(headers)
}

// ValidateRequiredColumns is the resolver-free form of the required-column check.
func ValidateRequiredColumns(headers []string) ValidationResult {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[Normalize(h)] = struct{}{}
	}

	missing := []model.MissingColumn{}
	for _, c := range defaultColumns {
		if _, ok := present[Normalize(c.External)]; ok {
			continue
		}
		missing = append(missing, model.MissingColumn{
			External:    c.External,
			Internal:    c.Internal,
			DisplayName: DisplayName(c.Internal),
		})
	}

	return ValidationResult{IsValid: len(missing) == 0, MissingColumns: missing}
}

// FindMatchingColumnKey returns the internal field a header resolves to,
// first through the current mapping and then through the alternatives table.
// It returns "" when nothing matches.
func (r *Resolver) FindMatchingColumnKey(ctx context.Context, column string) string {
	if column == "" {
		return ""
	}
	if internal, ok := r.GetMapping(ctx).Lookup(column); ok {
		return internal
	}

	target := Normalize(column)
	for _, field := range alternativeFieldOrder {
		for _, alt := range alternativeNames[field] {
			if Normalize(alt) == target {
				return field
			}
		}
	}
	return ""
}

// KnownNames lists every external name known for a field: the inverse
// mapping entry followed by the alternatives, without duplicates.
func (r *Resolver) KnownNames(ctx context.Context, field string) []string {
	var names []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok || name == "" {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	add(r.GetInverseMapping(ctx)[field])
	for _, alt := range alternativeNames[field] {
		add(alt)
	}
	return names
}
