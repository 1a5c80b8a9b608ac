package mapping

import "post-stats-pipeline/internal/model"

// Column pairs an external header with its internal field.
type Column struct {
	External string `json:"external" yaml:"external"`
	Internal string `json:"internal" yaml:"internal"`
}

// defaultColumns is the header set of the Swedish Meta Business Suite
// export. Every entry is a required column.
var defaultColumns = []Column{
	{"Publicerings-id", model.FieldPostID},
	{"Konto-id", model.FieldAccountID},
	{"Kontonamn", model.FieldAccountName},
	{"Kontots användarnamn", model.FieldAccountUsername},
	{"Beskrivning", model.FieldDescription},
	{"Publiceringstid", model.FieldPublishTime},
	{"Inläggstyp", model.FieldPostType},
	{"Permalänk", model.FieldPermalink},
	{"Visningar", model.FieldViews},
	{"Räckvidd", model.FieldPostReach},
	{"Gilla-markeringar", model.FieldLikes},
	{"Kommentarer", model.FieldComments},
	{"Delningar", model.FieldShares},
	{"Följer", model.FieldFollows},
	{"Sparade objekt", model.FieldSaves},
}

// DefaultColumns returns the required columns in export order.
func DefaultColumns() []Column {
	out := make([]Column, len(defaultColumns))
	copy(out, defaultColumns)
	return out
}

// DefaultMapping returns a fresh copy of the built-in mapping.
func DefaultMapping() Mapping {
	m := make(Mapping, len(defaultColumns))
	for _, c := range defaultColumns {
		m[c.External] = c.Internal
	}
	return m
}

// alternativeNames are extra headers seen across export versions and
// languages. Read-only.
var alternativeNames = map[string][]string{
	model.FieldViews:           {"Views", "Visningar", "Impressions", "Exponeringar", "impressions"},
	model.FieldPostReach:       {"Reach", "Räckvidd", "reach"},
	model.FieldLikes:           {"Likes", "Gilla-markeringar", "Gilla markeringar", "likes"},
	model.FieldComments:        {"Comments", "Kommentarer", "comments"},
	model.FieldShares:          {"Shares", "Delningar", "shares"},
	model.FieldFollows:         {"Follows", "Följer", "Följare", "follows"},
	model.FieldSaves:           {"Saves", "Sparade objekt", "Sparade", "saves"},
	model.FieldPostID:          {"Post ID", "Publicerings-id", "Inläggs-ID", "PostID", "post_id", "post-id"},
	model.FieldAccountID:       {"Account ID", "Konto-id", "Konto-ID", "KontoID", "account_id", "page_id"},
	model.FieldAccountName:     {"Account name", "Kontonamn", "Page name", "account_name"},
	model.FieldAccountUsername: {"Account username", "Kontots användarnamn", "Användarnamn", "Username", "account_username"},
	model.FieldDescription:     {"Description", "Beskrivning", "description", "Caption", "caption"},
	model.FieldPublishTime:     {"Publish time", "Publiceringstid", "publish_time", "Date", "date", "Datum"},
	model.FieldPostType:        {"Post type", "Inläggstyp", "Typ", "post_type", "Type", "type"},
	model.FieldPermalink:       {"Permalink", "Permalänk", "Länk", "permalink", "Link", "link", "URL", "url"},
}

// AlternativeNames returns the fallback headers for an internal field.
func AlternativeNames(field string) []string {
	return alternativeNames[field]
}

// alternativeFieldOrder is the lookup order when matching a header against
// the alternatives table.
var alternativeFieldOrder = []string{
	model.FieldViews,
	model.FieldPostReach,
	model.FieldLikes,
	model.FieldComments,
	model.FieldShares,
	model.FieldFollows,
	model.FieldSaves,
	model.FieldPostID,
	model.FieldAccountID,
	model.FieldAccountName,
	model.FieldAccountUsername,
	model.FieldDescription,
	model.FieldPublishTime,
	model.FieldPostType,
	model.FieldPermalink,
}

var displayNames = map[string]string{
	model.FieldPostID:                  "Post ID",
	model.FieldAccountID:               "Konto-ID",
	model.FieldAccountName:             "Kontonamn",
	model.FieldAccountUsername:         "Användarnamn",
	model.FieldDescription:             "Beskrivning",
	model.FieldPublishTime:             "Publiceringstid",
	model.FieldPostType:                "Typ",
	model.FieldPermalink:               "Länk",
	model.FieldViews:                   "Visningar",
	model.FieldPostReach:               "Räckvidd",
	model.FieldAverageReach:            "Genomsnittlig räckvidd",
	model.FieldEngagementTotal:         "Interaktioner",
	model.FieldEngagementTotalExtended: "Totalt engagemang (alla typer)",
	model.FieldLikes:                   "Gilla-markeringar",
	model.FieldComments:                "Kommentarer",
	model.FieldShares:                  "Delningar",
	model.FieldSaves:                   "Sparade",
	model.FieldFollows:                 "Följare",
	model.FieldPostCount:               "Antal publiceringar",
	model.FieldPostsPerDay:             "Antal publiceringar per dag",
}

// DisplayName returns the label for a field, or the field itself when unknown.
func DisplayName(field string) string {
	if name, ok := displayNames[field]; ok {
		return name
	}
	return field
}

// DisplayNames returns a copy of the field label table.
func DisplayNames() map[string]string {
	out := make(map[string]string, len(displayNames))
	for k, v := range displayNames {
		out[k] = v
	}
	return out
}

// ColumnGroup is a named set of fields shown together.
type ColumnGroup struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

var columnGroups = []ColumnGroup{
	{
		Name: "Metadata",
		Fields: []string{
			model.FieldPostID, model.FieldAccountID, model.FieldAccountName, model.FieldAccountUsername,
			model.FieldDescription, model.FieldPublishTime, model.FieldPostType, model.FieldPermalink,
		},
	},
	{
		Name:   "Räckvidd och visningar",
		Fields: []string{model.FieldViews, model.FieldPostReach, model.FieldAverageReach},
	},
	{
		Name: "Engagemang",
		Fields: []string{
			model.FieldEngagementTotal, model.FieldEngagementTotalExtended,
			model.FieldLikes, model.FieldComments, model.FieldShares, model.FieldSaves, model.FieldFollows,
		},
	},
}

// ColumnGroups returns the field groups in display order.
func ColumnGroups() []ColumnGroup {
	out := make([]ColumnGroup, len(columnGroups))
	copy(out, columnGroups)
	return out
}
