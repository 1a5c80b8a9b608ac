package accessor

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"post-stats-pipeline/internal/mapping"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/pkg/utils"
)

func present(rec model.GenericRecord, key string) (interface{}, bool) {
	v, ok := rec[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// derivedEngagement always computes engagement totals from their components,
// even when the record carries a stored total.
type derivedEngagement struct {
	a *Accessor
}

func (derivedEngagement) Name() string { return "derived" }

func (d derivedEngagement) Resolve(rec model.GenericRecord, field string) (interface{}, bool) {
	var parts []string
	switch field {
	case model.FieldEngagementTotal:
		parts = model.BaseEngagementFields
	case model.FieldEngagementTotalExtended:
		parts = model.ExtendedEngagementFields
	default:
		return nil, false
	}

	sum := 0.0
	for _, p := range parts {
		sum += utils.Numeric(d.a.GetValue(rec, p))
	}
	return sum, true
}

type directKey struct{}

func (directKey) Name() string { return "direct" }

func (directKey) Resolve(rec model.GenericRecord, field string) (interface{}, bool) {
	return present(rec, field)
}

// identityKeys are literal header spellings for identity fields that must
// resolve even when the mapping and alternatives tables are stale.
var identityKeys = map[string][]string{
	model.FieldAccountName: {"account_name", "Account name", "Page name", "Kontonamn"},
	model.FieldAccountID:   {"account_id", "Account ID", "Konto-ID", "Page ID"},
}

type identityProbe struct{}

func (identityProbe) Name() string { return "identity" }

func (identityProbe) Resolve(rec model.GenericRecord, field string) (interface{}, bool) {
	for _, key := range identityKeys[field] {
		if v, ok := present(rec, key); ok {
			return v, true
		}
	}
	return nil, false
}

type inverseLookup struct {
	inverse mapping.Mapping
}

func (inverseLookup) Name() string { return "inverse-mapping" }

func (s inverseLookup) Resolve(rec model.GenericRecord, field string) (interface{}, bool) {
	ext, ok := s.inverse[field]
	if !ok {
		return nil, false
	}
	return present(rec, ext)
}

type alternativeNames struct{}

func (alternativeNames) Name() string { return "alternatives" }

func (alternativeNames) Resolve(rec model.GenericRecord, field string) (interface{}, bool) {
	for _, alt := range mapping.AlternativeNames(field) {
		if v, ok := present(rec, alt); ok {
			return v, true
		}
	}
	return nil, false
}

const normalizedCacheSize = 4096

// normalizedScan compares the field against every record key after
// normalization. Keys are visited in sorted order so collisions resolve the
// same way on every call.
type normalizedScan struct {
	cache *lru.Cache[string, string]
}

func newNormalizedScan() normalizedScan {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, string](normalizedCacheSize)
	return normalizedScan{cache: cache}
}

func (normalizedScan) Name() string { return "normalized-scan" }

func (s normalizedScan) normalize(key string) string {
	if n, ok := s.cache.Get(key); ok {
		return n
	}
	n := mapping.Normalize(key)
	s.cache.Add(key, n)
	return n
}

func (s normalizedScan) Resolve(rec model.GenericRecord, field string) (interface{}, bool) {
	target := s.normalize(field)
	keys := rec.Keys()
	sort.Strings(keys)
	for _, key := range keys {
		if s.normalize(key) == target {
			if v, ok := present(rec, key); ok {
				return v, true
			}
		}
	}
	return nil, false
}
