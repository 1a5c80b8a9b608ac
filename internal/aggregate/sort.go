package aggregate

import (
	"sort"

	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/pkg/utils"
)

// SortRows orders rollup rows by one field. Numeric values compare as
// numbers, anything else as text. The sort is stable.
func SortRows(rows []model.GenericRecord, field string, ascending bool) []model.GenericRecord {
	sort.SliceStable(rows, func(i, j int) bool {
		iVal, jVal := rows[i][field], rows[j][field]

		iFloat, iOk := utils.ToFloat(iVal)
		jFloat, jOk := utils.ToFloat(jVal)
		if iOk && jOk {
			if ascending {
				return iFloat < jFloat
			}
			return iFloat > jFloat
		}

		iStr := utils.String(iVal)
		jStr := utils.String(jVal)
		if ascending {
			return iStr < jStr
		}
		return iStr > jStr
	})
	return rows
}

// SortPostTypes orders post type summaries by post count, largest first.
func SortPostTypes(summaries []model.PostTypeSummary) []model.PostTypeSummary {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].PostCount > summaries[j].PostCount
	})
	return summaries
}
