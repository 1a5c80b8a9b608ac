// Package aggregate computes account and post type rollups from post records.
// Every call recomputes from the records it is given.
package aggregate

import (
	"post-stats-pipeline/internal/accessor"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/pkg/utils"
)

const (
	UnknownAccountName = "Unknown"
	UnknownUsername    = "-"
	TotalRowLabel      = "Totalt"
)

// totalExcluded fields never get a value in the total row.
var totalExcluded = map[string]bool{
	model.FieldAverageReach: true,
	model.FieldPostsPerDay:  true,
}

// accumulator holds the always-computed base sums of one group.
type accumulator struct {
	views     float64
	reach     float64
	likes     float64
	comments  float64
	shares    float64
	saves     float64
	follows   float64
	postCount int
}

func (a *accumulator) add(acc *accessor.Accessor, rec model.GenericRecord) {
	a.views += acc.Number(rec, model.FieldViews)
	a.reach += acc.Number(rec, model.FieldPostReach)
	a.likes += acc.Number(rec, model.FieldLikes)
	a.comments += acc.Number(rec, model.FieldComments)
	a.shares += acc.Number(rec, model.FieldShares)
	a.saves += acc.Number(rec, model.FieldSaves)
	a.follows += acc.Number(rec, model.FieldFollows)
	a.postCount++
}

func (a *accumulator) engagement() float64 {
	return a.likes + a.comments + a.shares
}

func (a *accumulator) engagementExtended() float64 {
	return a.engagement() + a.saves + a.follows
}

func (a *accumulator) averageReach() float64 {
	if a.postCount == 0 {
		return 0
	}
	return utils.RoundHalfUp(a.reach / float64(a.postCount))
}

// value returns the rollup value for one field. ok is false for fields an
// accumulator does not produce.
func (a *accumulator) value(field string) (interface{}, bool) {
	switch field {
	case model.FieldViews:
		return a.views, true
	case model.FieldPostReach:
		return a.reach, true
	case model.FieldLikes:
		return a.likes, true
	case model.FieldComments:
		return a.comments, true
	case model.FieldShares:
		return a.shares, true
	case model.FieldSaves:
		return a.saves, true
	case model.FieldFollows:
		return a.follows, true
	case model.FieldEngagementTotal:
		return a.engagement(), true
	case model.FieldEngagementTotalExtended:
		return a.engagementExtended(), true
	case model.FieldAverageReach:
		return a.averageReach(), true
	case model.FieldPostCount:
		return a.postCount, true
	}
	return nil, false
}

type accountGroup struct {
	id       string
	name     string
	username string
	posts    []model.GenericRecord
}

func selectedFields(fields []string) []string {
	if len(fields) == 0 {
		return model.AccountFields
	}
	return fields
}

// groupByAccount groups posts by resolved account_id in first-seen order.
// Posts without an account id are counted in unassigned.
func groupByAccount(acc *accessor.Accessor, posts []model.GenericRecord) (groups []*accountGroup, unassigned int) {
	index := make(map[string]*accountGroup)
	for _, rec := range posts {
		idVal := acc.GetValue(rec, model.FieldAccountID)
		if utils.IsEmpty(idVal) {
			unassigned++
			continue
		}
		id := utils.String(idVal)

		g, ok := index[id]
		if !ok {
			g = &accountGroup{id: id}
			index[id] = g
			groups = append(groups, g)
		}
		if g.name == "" {
			g.name = acc.Text(rec, model.FieldAccountName)
		}
		if g.username == "" {
			g.username = acc.Text(rec, model.FieldAccountUsername)
		}
		g.posts = append(g.posts, rec)
	}
	return groups, unassigned
}

func summarize(acc *accessor.Accessor, g *accountGroup, fields []string) model.GenericRecord {
	var sums accumulator
	for _, rec := range g.posts {
		sums.add(acc, rec)
	}

	row := model.GenericRecord{
		model.FieldAccountID:       g.id,
		model.FieldAccountName:     g.name,
		model.FieldAccountUsername: g.username,
	}
	if row[model.FieldAccountName] == "" {
		row[model.FieldAccountName] = UnknownAccountName
	}
	if row[model.FieldAccountUsername] == "" {
		row[model.FieldAccountUsername] = UnknownUsername
	}

	for _, field := range fields {
		if field == model.FieldPostsPerDay {
			row[field] = postsPerDay(acc, g.posts)
			continue
		}
		if v, ok := sums.value(field); ok {
			row[field] = v
		}
	}
	return row
}

// ByAccount returns one rollup row per account_id with the selected fields.
// An empty selection means every account field. Row order is first-seen.
func ByAccount(acc *accessor.Accessor, posts []model.GenericRecord, fields []string) []model.GenericRecord {
	groups, _ := groupByAccount(acc, posts)
	return summarizeAll(acc, groups, selectedFields(fields))
}

func summarizeAll(acc *accessor.Accessor, groups []*accountGroup, fields []string) []model.GenericRecord {
	rows := make([]model.GenericRecord, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, summarize(acc, g, fields))
	}
	return rows
}

// TotalRow sums primitives directly over every post, including posts with no
// account. Composite fields come from those sums; averages and rates are left
// out.
func TotalRow(acc *accessor.Accessor, posts []model.GenericRecord, fields []string) model.GenericRecord {
	var sums accumulator
	for _, rec := range posts {
		sums.add(acc, rec)
	}

	row := model.GenericRecord{model.FieldAccountName: TotalRowLabel}
	for _, field := range selectedFields(fields) {
		if totalExcluded[field] {
			continue
		}
		if v, ok := sums.value(field); ok {
			row[field] = v
		}
	}
	return row
}

// View builds the account table with its total row.
func View(acc *accessor.Accessor, posts []model.GenericRecord, fields []string) model.AccountView {
	fields = selectedFields(fields)
	groups, unassigned := groupByAccount(acc, posts)

	return model.AccountView{
		Rows:            summarizeAll(acc, groups, fields),
		Total:           TotalRow(acc, posts, fields),
		UnassignedPosts: unassigned,
	}
}

// CountUniqueAccounts counts the distinct resolvable account ids in records.
func CountUniqueAccounts(acc *accessor.Accessor, records []model.GenericRecord) int {
	seen := make(map[string]struct{})
	for _, rec := range records {
		if v := acc.GetValue(rec, model.FieldAccountID); !utils.IsEmpty(v) {
			seen[utils.String(v)] = struct{}{}
		}
	}
	return len(seen)
}
