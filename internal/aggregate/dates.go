package aggregate

import (
	"math"
	"time"

	"post-stats-pipeline/internal/accessor"
	"post-stats-pipeline/internal/model"
	"post-stats-pipeline/pkg/utils"
)

const msPerDay = 86400000

// publishDate resolves publish_time, then the plain date column.
func publishDate(acc *accessor.Accessor, rec model.GenericRecord) (time.Time, bool) {
	if t, ok := utils.ParseDate(acc.GetValue(rec, model.FieldPublishTime)); ok {
		return t, true
	}
	return utils.ParseDate(acc.GetValue(rec, model.FieldDate))
}

func dateBounds(acc *accessor.Accessor, posts []model.GenericRecord) (earliest, latest time.Time, ok bool) {
	for _, rec := range posts {
		t, valid := publishDate(acc, rec)
		if !valid {
			continue
		}
		if !ok || t.Before(earliest) {
			earliest = t
		}
		if !ok || t.After(latest) {
			latest = t
		}
		ok = true
	}
	return earliest, latest, ok
}

// postsPerDay is post count over the inclusive span of calendar dates the
// group was published on, one decimal. Without any valid date all posts count
// as one day.
func postsPerDay(acc *accessor.Accessor, posts []model.GenericRecord) float64 {
	count := float64(len(posts))
	earliest, latest, ok := dateBounds(acc, posts)
	if !ok {
		return count
	}

	diffMs := float64(calendarDay(latest).Sub(calendarDay(earliest)).Milliseconds())
	days := math.Ceil(diffMs/msPerDay) + 1
	if days < 1 {
		days = 1
	}
	return utils.RoundTo(count/days, 1)
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange returns the span of resolvable publish dates as YYYY-MM-DD.
func DateRange(acc *accessor.Accessor, posts []model.GenericRecord) model.DateRange {
	earliest, latest, ok := dateBounds(acc, posts)
	if !ok {
		return model.DateRange{}
	}
	return model.DateRange{StartDate: utils.FormatDate(earliest), EndDate: utils.FormatDate(latest)}
}
