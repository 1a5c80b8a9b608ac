package aggregate

import (
	"sort"
	"strings"

	"post-stats-pipeline/internal/accessor"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/pkg/utils"
)

const (
	UnknownPostType = "Unknown"

	// AllAccounts disables the account filter in the post type view.
	AllAccounts = "all_accounts"

	// MinReliableSample is the smallest group whose rates are flagged reliable.
	MinReliableSample = 5
)

type metricAcc struct {
	sum   float64
	count int
}

type postTypeGroup struct {
	postType string
	count    int
	metrics  map[string]*metricAcc
}

// ByPostType groups posts by post_type after filtering on account name.
// An empty filter or AllAccounts keeps every post. Group order is first-seen.
func ByPostType(acc *accessor.Accessor, posts []model.GenericRecord, accountFilter string) []model.PostTypeSummary {
	filtered := FilterByAccountName(acc, posts, accountFilter)

	var groups []*postTypeGroup
	index := make(map[string]*postTypeGroup)
	for _, rec := range filtered {
		pt := acc.Text(rec, model.FieldPostType)
		if pt == "" {
			pt = UnknownPostType
		}

		g, ok := index[pt]
		if !ok {
			g = &postTypeGroup{postType: pt, metrics: make(map[string]*metricAcc, len(model.PostTypeMetrics))}
			for _, m := range model.PostTypeMetrics {
				g.metrics[m] = &metricAcc{}
			}
			index[pt] = g
			groups = append(groups, g)
		}

		g.count++
		for _, m := range model.PostTypeMetrics {
			if v, ok := utils.ToFloat(acc.GetValue(rec, m)); ok {
				g.metrics[m].sum += v
				g.metrics[m].count++
			}
		}
	}

	out := make([]model.PostTypeSummary, 0, len(groups))
	for _, g := range groups {
		summary := model.PostTypeSummary{
			PostType:   g.postType,
			PostCount:  g.count,
			Percentage: float64(g.count) / float64(len(filtered)) * 100,
			IsReliable: g.count >= MinReliableSample,
			Metrics:    make(map[string]model.MetricStat, len(g.metrics)),
		}
		for name, m := range g.metrics {
			stat := model.MetricStat{Sum: m.sum}
			if m.count > 0 {
				stat.Mean = m.sum / float64(m.count)
			}
			summary.Metrics[name] = stat
		}
		out = append(out, summary)
	}
	return out
}

// FilterByAccountName keeps posts whose resolved account_name equals name.
func FilterByAccountName(acc *accessor.Accessor, posts []model.GenericRecord, name string) []model.GenericRecord {
	name = strings.TrimSpace(name)
	if name == "" || name == AllAccounts {
		return posts
	}

	var out []model.GenericRecord
	for _, rec := range posts {
		if acc.Text(rec, model.FieldAccountName) == name {
			out = append(out, rec)
		}
	}
	return out
}

// UniqueAccountNames returns the sorted distinct account names in posts.
func UniqueAccountNames(acc *accessor.Accessor, posts []model.GenericRecord) []string {
	seen := make(map[string]struct{})
	names := []string{}
	for _, rec := range posts {
		name := acc.Text(rec, model.FieldAccountName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
