// Package accessor resolves internal field values from records whose keys may
// be internal identifiers, current external headers or historical spellings.
package accessor

import (
	"context"
	"encoding/json"
	"strings"

	"post-stats-pipeline/internal/mapping"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/pkg/utils"
)

// Strategy is one step of the resolution chain. It reports false when it
// has nothing for the field so the next step runs.
type Strategy interface {
	Name() string
	Resolve(rec model.GenericRecord, field string) (interface{}, bool)
}

// Accessor runs its strategies in order; the first hit wins.
type Accessor struct {
	chain []Strategy
}

// New builds the standard chain over an inverse mapping snapshot
// (internal -> external).
func New(inverse mapping.Mapping) *Accessor {
	a := &Accessor{}
	a.chain = []Strategy{
		derivedEngagement{a},
		directKey{},
		identityProbe{},
		inverseLookup{inverse},
		alternativeNames{},
		newNormalizedScan(),
	}
	return a
}

// FromResolver builds an accessor over the resolver's current inverse mapping.
func FromResolver(ctx context.Context, r *mapping.Resolver) *Accessor {
	return New(r.GetInverseMapping(ctx))
}

// NewWithChain builds an accessor over a custom chain.
func NewWithChain(strategies ...Strategy) *Accessor {
	return &Accessor{chain: strategies}
}

// GetValue returns the value of field in rec, or nil when nothing resolves.
// Numeric-looking text comes back as a number.
func (a *Accessor) GetValue(rec model.GenericRecord, field string) interface{} {
	if rec == nil || field == "" {
		return nil
	}
	for _, s := range a.chain {
		if v, ok := s.Resolve(rec, field); ok {
			return SafeParseValue(v)
		}
	}
	return nil
}

// Number returns the numeric value of field, 0 when absent or not numeric.
func (a *Accessor) Number(rec model.GenericRecord, field string) float64 {
	return utils.Numeric(a.GetValue(rec, field))
}

// Text returns the value of field rendered as text, "" when absent.
func (a *Accessor) Text(rec model.GenericRecord, field string) string {
	return strings.TrimSpace(utils.String(a.GetValue(rec, field)))
}

// SafeParseValue coerces numeric-looking strings to numbers and passes any
// other value through. nil stays nil.
func SafeParseValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(val) == "" {
			return val
		}
		return utils.ParseValue(val)
	case json.Number:
		return utils.ParseValue(val.String())
	default:
		return val
	}
}
