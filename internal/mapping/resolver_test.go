package mapping

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-stats-pipeline/internal/model"
)

type memStore struct {
	data   map[string][]byte
	gets   int
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.gets++
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Gilla-markeringar ", "gilla-markeringar"},
		{"Sparade\t\tobjekt", "sparade objekt"},
		{"\uFEFFPublicerings-id", "publicerings-id"},
		{"Kon\u200Bto-id", "konto-id"},
		{"Räckvidd", "räckvidd"},
		{"Kontots användarnamn", "kontots användarnamn"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestResolver_GetMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when nothing stored", func(t *testing.T) {
		r := NewResolver(newMemStore(), nil)
		assert.Equal(t, DefaultMapping(), r.GetMapping(ctx))
	})

	t.Run("stored mapping wins and is cached", func(t *testing.T) {
		store := newMemStore()
		stored := Mapping{"Likes": model.FieldLikes, "Post ID": model.FieldPostID}
		raw, _ := json.Marshal(stored)
		store.data[model.KeyColumnMappings] = raw

		r := NewResolver(store, nil)
		assert.Equal(t, stored, r.GetMapping(ctx))
		assert.Equal(t, stored, r.GetMapping(ctx))
		assert.Equal(t, 1, store.gets)
	})

	t.Run("store failure falls back without caching", func(t *testing.T) {
		store := newMemStore()
		store.getErr = errors.New("locked")
		r := NewResolver(store, nil)

		assert.Equal(t, DefaultMapping(), r.GetMapping(ctx))
		r.GetMapping(ctx)
		assert.Equal(t, 2, store.gets)
	})

	t.Run("callers cannot mutate the cache", func(t *testing.T) {
		r := NewResolver(newMemStore(), nil)
		m := r.GetMapping(ctx)
		m["Hacked"] = "likes"
		_, ok := r.GetMapping(ctx)["Hacked"]
		assert.False(t, ok)
	})
}

func TestResolver_SaveMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		r := NewResolver(newMemStore(), nil)
		m := DefaultMapping()
		m["Likes"] = model.FieldLikes

		require.NoError(t, r.SaveMapping(ctx, m))
		assert.Equal(t, m, r.GetMapping(ctx))
	})

	t.Run("save invalidates cache", func(t *testing.T) {
		r := NewResolver(newMemStore(), nil)
		assert.Equal(t, "Gilla-markeringar", r.GetInverseMapping(ctx)[model.FieldLikes])

		require.NoError(t, r.SaveMapping(ctx, Mapping{"Likes": model.FieldLikes}))
		assert.Equal(t, "Likes", r.GetInverseMapping(ctx)[model.FieldLikes])
	})

	t.Run("empty external name rejected before mutation", func(t *testing.T) {
		store := newMemStore()
		r := NewResolver(store, nil)
		before := r.GetMapping(ctx)

		err := r.SaveMapping(ctx, Mapping{"  ": model.FieldLikes})
		var conflict *model.MappingConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Empty(t, store.data)
		assert.Equal(t, before, r.GetMapping(ctx))
	})

	t.Run("names that normalize alike round trip", func(t *testing.T) {
		r := NewResolver(newMemStore(), nil)
		m := Mapping{"Likes": model.FieldLikes, "likes": model.FieldComments}

		require.NoError(t, r.SaveMapping(ctx, m))
		assert.Equal(t, m, r.GetMapping(ctx))
	})

	t.Run("store rejection keeps previous mapping", func(t *testing.T) {
		store := newMemStore()
		r := NewResolver(store, nil)
		before := r.GetMapping(ctx)

		store.setErr = model.ErrQuotaExceeded
		err := r.SaveMapping(ctx, Mapping{"Likes": model.FieldLikes})

		var pe *model.PersistenceError
		require.ErrorAs(t, err, &pe)
		assert.ErrorIs(t, err, model.ErrQuotaExceeded)
		assert.Equal(t, before, r.GetMapping(ctx))
	})
}

func TestMapping_Inverse(t *testing.T) {
	m := Mapping{
		"Gilla-markeringar": model.FieldLikes,
		"Likes":             model.FieldLikes,
		"Delningar":         model.FieldShares,
	}
	inv := m.Inverse()

	assert.Len(t, inv, 2)
	assert.Equal(t, "Likes", inv[model.FieldLikes])
	assert.Equal(t, "Delningar", inv[model.FieldShares])
}

func TestValidateRequiredColumns(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		var headers []string
		for _, c := range DefaultColumns() {
			headers = append(headers, " "+c.External+" ")
		}
		res := ValidateRequiredColumns(headers)
		assert.True(t, res.IsValid)
		assert.Empty(t, res.MissingColumns)
		assert.NoError(t, res.Err())
	})

	t.Run("missing permalink", func(t *testing.T) {
		var headers []string
		for _, c := range DefaultColumns() {
			if c.External != "Permalänk" {
				headers = append(headers, c.External)
			}
		}

		res := NewResolver(newMemStore(), nil).ValidateRequiredColumns(headers)
		assert.False(t, res.IsValid)
		require.Len(t, res.MissingColumns, 1)
		assert.Equal(t, model.MissingColumn{External: "Permalänk", Internal: "permalink", DisplayName: "Länk"}, res.MissingColumns[0])

		var ve *model.ValidationError
		assert.ErrorAs(t, res.Err(), &ve)
	})

	t.Run("user mapping does not relax requirements", func(t *testing.T) {
		store := newMemStore()
		r := NewResolver(store, nil)
		require.NoError(t, r.SaveMapping(context.Background(), Mapping{"Likes": model.FieldLikes}))

		res := r.ValidateRequiredColumns([]string{"Likes"})
		assert.Len(t, res.MissingColumns, len(DefaultColumns()))
	})
}

func TestResolver_FindMatchingColumnKey(t *testing.T) {
	ctx := context.Background()
	r := NewResolver(newMemStore(), nil)

	assert.Equal(t, model.FieldLikes, r.FindMatchingColumnKey(ctx, "gilla-MARKERINGAR"))
	assert.Equal(t, model.FieldViews, r.FindMatchingColumnKey(ctx, "Impressions"))
	assert.Equal(t, model.FieldPermalink, r.FindMatchingColumnKey(ctx, " URL "))
	assert.Equal(t, "", r.FindMatchingColumnKey(ctx, "Something else"))
	assert.Equal(t, "", r.FindMatchingColumnKey(ctx, ""))
}

func TestResolver_KnownNames(t *testing.T) {
	r := NewResolver(newMemStore(), nil)
	names := r.KnownNames(context.Background(), model.FieldSaves)

	assert.Equal(t, []string{"Sparade objekt", "Saves", "Sparade", "saves"}, names)
}

func TestMapping_MapRecord(t *testing.T) {
	raw := model.GenericRecord{
		"Publicerings-id":    "p1",
		" gilla-markeringar": 5,
		"Custom column":      "x",
	}

	mapped := DefaultMapping().MapRecord(raw)

	assert.Equal(t, model.GenericRecord{
		model.FieldPostID: "p1",
		model.FieldLikes:  5,
		"Custom column":   "x",
	}, mapped)
}

func TestMapping_MapRecord_CollidingHeaders(t *testing.T) {
	m := Mapping{"Visningar": model.FieldViews, "Impressions": model.FieldViews}
	raw := model.GenericRecord{"Visningar": "10", "Impressions": "20"}

	tests := []struct {
		name    string
		headers []string
		want    string
	}{
		{"later column wins", []string{"Visningar", "Impressions"}, "20"},
		{"order reversed", []string{"Impressions", "Visningar"}, "10"},
		{"no headers falls back to sorted", nil, "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapRecord := m.Mapper(tt.headers...)
			for i := 0; i < 100; i++ {
				assert.Equal(t, model.GenericRecord{model.FieldViews: tt.want}, mapRecord(raw))
			}
		})
	}
}
