package mapping

import (
	"sort"
	"strings"

	"post-stats-pipeline/internal/model"
)

// Mapping associates external header names with internal field identifiers.
// Many external names may point at the same field.
type Mapping map[string]string

// Clone returns an independent copy.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// externals returns the external names in sorted order, which stands in for
// insertion order wherever a single winner must be picked.
func (m Mapping) externals() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Inverse maps each internal field to one external name. When several
// external names share a field the last one in sorted order is kept; the
// reverse lookup is advisory only.
func (m Mapping) Inverse() Mapping {
	inv := make(Mapping, len(m))
	for _, ext := range m.externals() {
		inv[m[ext]] = ext
	}
	return inv
}

// Lookup finds the internal field for a header by normalized comparison.
func (m Mapping) Lookup(header string) (string, bool) {
	target := Normalize(header)
	for _, ext := range m.externals() {
		if Normalize(ext) == target {
			return m[ext], true
		}
	}
	return "", false
}

// normalizedIndex precomputes Normalize(external) -> internal. The first
// external in sorted order wins a normalization collision.
func (m Mapping) normalizedIndex() map[string]string {
	idx := make(map[string]string, len(m))
	for _, ext := range m.externals() {
		key := Normalize(ext)
		if _, exists := idx[key]; !exists {
			idx[key] = m[ext]
		}
	}
	return idx
}

// MapRecord renames the headers of a raw record to internal fields. Headers
// with no mapping keep their original name. See Mapper for the headers
// argument.
func (m Mapping) MapRecord(raw model.GenericRecord, headers ...string) model.GenericRecord {
	return m.Mapper(headers...)(raw)
}

// Mapper returns a MapRecord function with the normalized index built once,
// for mapping many rows of the same file. Columns are visited in headers
// order, so when two columns map to one field the later column wins.
// Columns not listed in headers follow in sorted order.
func (m Mapping) Mapper(headers ...string) func(model.GenericRecord) model.GenericRecord {
	idx := m.normalizedIndex()
	return func(raw model.GenericRecord) model.GenericRecord {
		out := make(model.GenericRecord, len(raw))
		for _, col := range columnOrder(raw, headers) {
			name := col
			if internal, ok := idx[Normalize(col)]; ok {
				name = internal
			}
			out[name] = raw[col]
		}
		return out
	}
}

func columnOrder(raw model.GenericRecord, headers []string) []string {
	order := make([]string, 0, len(raw))
	listed := make(map[string]bool, len(headers))
	for _, h := range headers {
		if _, ok := raw[h]; ok && !listed[h] {
			listed[h] = true
			order = append(order, h)
		}
	}

	rest := make([]string, 0, len(raw)-len(order))
	for col := range raw {
		if !listed[col] {
			rest = append(rest, col)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// Validate rejects mappings with a blank external name.
func (m Mapping) Validate() error {
	for _, ext := range m.externals() {
		if strings.TrimSpace(ext) == "" {
			return &model.MappingConflictError{External: ext, Internal: m[ext], Reason: "external name must not be empty"}
		}
	}
	return nil
}
