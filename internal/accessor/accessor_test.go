package accessor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"post-stats-pipeline/internal/mapping"
	"post-stats-pipeline/internal/model"
)

func defaultAccessor() *Accessor {
	return New(mapping.DefaultMapping().Inverse())
}

func TestGetValue_ResolutionOrder(t *testing.T) {
	a := defaultAccessor()

	tests := []struct {
		name  string
		rec   model.GenericRecord
		field string
		want  interface{}
	}{
		{"direct key", model.GenericRecord{"likes": "7"}, model.FieldLikes, 7},
		{"direct key wins", model.GenericRecord{"likes": 1, "Gilla-markeringar": 2}, model.FieldLikes, 1},
		{"inverse mapping", model.GenericRecord{"Gilla-markeringar": "12"}, model.FieldLikes, 12},
		{"alternatives", model.GenericRecord{"Impressions": "100"}, model.FieldViews, 100},
		{"normalized scan", model.GenericRecord{"  SPARADE   objekt ": 3}, "Sparade objekt", 3},
		{"identity probe", model.GenericRecord{"Page ID": "abc"}, model.FieldAccountID, "abc"},
		{"identity falls through", model.GenericRecord{"Konto-id": "a1"}, model.FieldAccountID, "a1"},
		{"float text", model.GenericRecord{"post_reach": "12.5"}, model.FieldPostReach, 12.5},
		{"text stays text", model.GenericRecord{"post_type": "Reel"}, model.FieldPostType, "Reel"},
		{"json number", model.GenericRecord{"views": json.Number("40")}, model.FieldViews, 40},
		{"missing", model.GenericRecord{"other": 1}, model.FieldSaves, nil},
		{"nil value skipped", model.GenericRecord{"likes": nil, "Likes": 4}, model.FieldLikes, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.GetValue(tt.rec, tt.field))
		})
	}
}

func TestGetValue_NilRecord(t *testing.T) {
	assert.Nil(t, defaultAccessor().GetValue(nil, model.FieldLikes))
}

func TestGetValue_LargeIdentifiersStayExact(t *testing.T) {
	a := defaultAccessor()
	rec := model.GenericRecord{"Publicerings-id": "17912345678901234"}

	assert.Equal(t, "17912345678901234", a.Text(rec, model.FieldPostID))
}

func TestDerivedEngagement(t *testing.T) {
	a := defaultAccessor()

	t.Run("stored total is ignored", func(t *testing.T) {
		rec := model.GenericRecord{
			"likes":            8,
			"comments":         1,
			"shares":           2,
			"engagement_total": 999,
		}
		assert.Equal(t, 11.0, a.GetValue(rec, model.FieldEngagementTotal))
	})

	t.Run("extended over external headers", func(t *testing.T) {
		rec := model.GenericRecord{
			"Gilla-markeringar": "8",
			"Kommentarer":       "1",
			"Delningar":         "2",
			"Sparade objekt":    "4",
			"Följer":            "",
		}
		assert.Equal(t, 15.0, a.GetValue(rec, model.FieldEngagementTotalExtended))
	})

	t.Run("no components is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, a.Number(model.GenericRecord{}, model.FieldEngagementTotal))
	})
}

func TestNumberAndText(t *testing.T) {
	a := defaultAccessor()
	rec := model.GenericRecord{"Räckvidd": " 250 ", "Kontonamn": " Acme "}

	assert.Equal(t, 250.0, a.Number(rec, model.FieldPostReach))
	assert.Equal(t, 0.0, a.Number(rec, model.FieldLikes))
	assert.Equal(t, "Acme", a.Text(rec, model.FieldAccountName))
	assert.Equal(t, "", a.Text(rec, model.FieldPermalink))
}

func TestUserMappingIsHonoured(t *testing.T) {
	a := New(mapping.Mapping{"Likes total": model.FieldLikes}.Inverse())
	rec := model.GenericRecord{"Likes total": 9}

	assert.Equal(t, 9, a.GetValue(rec, model.FieldLikes))
}

type fixed struct{ v interface{} }

func (fixed) Name() string { return "fixed" }

func (f fixed) Resolve(model.GenericRecord, string) (interface{}, bool) { return f.v, true }

func TestNewWithChain(t *testing.T) {
	a := NewWithChain(fixed{"42"})
	assert.Equal(t, 42, a.GetValue(model.GenericRecord{}, "anything"))
}

func TestSafeParseValue(t *testing.T) {
	assert.Nil(t, SafeParseValue(nil))
	assert.Equal(t, "", SafeParseValue(""))
	assert.Equal(t, 3, SafeParseValue(" 3 "))
	assert.Equal(t, true, SafeParseValue(true))
	assert.Equal(t, 1.5, SafeParseValue(json.Number("1.5")))
}
