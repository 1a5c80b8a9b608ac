package model

// GenericRecord is a schema-agnostic row. Raw CSV rows are keyed by the
// external header text; post records are keyed by internal field identifiers.
type GenericRecord map[string]interface{}

// Clone returns a shallow copy of the record.
func (r GenericRecord) Clone() GenericRecord {
	out := make(GenericRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the record keys in no particular order.
func (r GenericRecord) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	return keys
}

// Internal field identifiers
const (
	FieldPostID          = "post_id"
	FieldAccountID       = "account_id"
	FieldAccountName     = "account_name"
	FieldAccountUsername = "account_username"
	FieldDescription     = "description"
	FieldPublishTime     = "publish_time"
	FieldDate            = "date"
	FieldPostType        = "post_type"
	FieldPermalink       = "permalink"

	FieldViews     = "views"
	FieldPostReach = "post_reach"
	FieldLikes     = "likes"
	FieldComments  = "comments"
	FieldShares    = "shares"
	FieldSaves     = "saves"
	FieldFollows   = "follows"

	FieldEngagementTotal         = "engagement_total"
	FieldEngagementTotalExtended = "engagement_total_extended"
	FieldAverageReach            = "average_reach"
	FieldPostCount               = "post_count"
	FieldPostsPerDay             = "posts_per_day"
)

// FileIdentifierKey tags every post record with the import batch that produced it.
const FileIdentifierKey = "_file_identifier"

// BaseEngagementFields are summed into engagement_total.
var BaseEngagementFields = []string{FieldLikes, FieldComments, FieldShares}

// ExtendedEngagementFields are summed into engagement_total_extended.
var ExtendedEngagementFields = []string{FieldLikes, FieldComments, FieldShares, FieldSaves, FieldFollows}

// SummableFields are accumulated per account on every import.
var SummableFields = []string{FieldViews, FieldLikes, FieldComments, FieldShares, FieldSaves, FieldFollows}

// AccountFields is every field an account rollup can carry, in display order.
var AccountFields = []string{
	FieldViews,
	FieldPostReach,
	FieldAverageReach,
	FieldEngagementTotal,
	FieldEngagementTotalExtended,
	FieldLikes,
	FieldComments,
	FieldShares,
	FieldSaves,
	FieldFollows,
	FieldPostCount,
	FieldPostsPerDay,
}

// PostTypeMetrics are averaged and summed per post type.
var PostTypeMetrics = []string{
	FieldViews,
	FieldPostReach,
	FieldEngagementTotal,
	FieldLikes,
	FieldComments,
	FieldShares,
	FieldSaves,
	FieldFollows,
}

// IsDerivedField reports whether a field is always computed from its components.
func IsDerivedField(field string) bool {
	return field == FieldEngagementTotal || field == FieldEngagementTotalExtended
}

// Logical storage keys
const (
	KeyColumnMappings = "instagram_stats_column_mappings"
	KeyAccountView    = "instagram_stats_account_view"
	KeyPostView       = "instagram_stats_post_view"
	KeyFileMetadata   = "instagram_stats_file_metadata"
)
