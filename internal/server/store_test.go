package server

import (
	"context"
	"testing"

	"heroes/internal/hero"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeImpls(t *testing.T) map[string]func() Store {
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore(DefaultHeroes()) },
		"badger": func() Store {
			s, err := OpenBadgerStore("", DefaultHeroes())
			require.NoError(t, err)
			return s
		},
	}
}

func TestStores(t *testing.T) {
	for name, open := range storeImpls(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("list is seeded in id order", func(t *testing.T) {
				s := open()
				defer s.Close()
				heroes, err := s.List(ctx)
				require.NoError(t, err)
				require.Len(t, heroes, 10)
				assert.Equal(t, 11, heroes[0].ID)
				assert.Equal(t, 20, heroes[9].ID)
			})

			t.Run("get", func(t *testing.T) {
				s := open()
				defer s.Close()
				h, err := s.Get(ctx, 13)
				require.NoError(t, err)
				assert.Equal(t, "Bombasto", h.Name)

				_, err = s.Get(ctx, 99)
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("search ignores case", func(t *testing.T) {
				s := open()
				defer s.Close()
				heroes, err := s.Search(ctx, "MA")
				require.NoError(t, err)
				names := make([]string, len(heroes))
				for i, h := range heroes {
					names[i] = h.Name
				}
				assert.Equal(t, []string{"Magneta", "RubberMan", "Dynama", "Magma"}, names)

				none, err := s.Search(ctx, "zzz")
				require.NoError(t, err)
				assert.Empty(t, none)
			})

			t.Run("create assigns max plus one", func(t *testing.T) {
				s := open()
				defer s.Close()
				h, err := s.Create(ctx, "Robin")
				require.NoError(t, err)
				assert.Equal(t, hero.Hero{ID: 21, Name: "Robin"}, h)

				require.NoError(t, s.Delete(ctx, 21))
				require.NoError(t, s.Delete(ctx, 20))
				h, err = s.Create(ctx, "Batgirl")
				require.NoError(t, err)
				assert.Equal(t, 20, h.ID)
			})

			t.Run("update replaces record", func(t *testing.T) {
				s := open()
				defer s.Close()
				require.NoError(t, s.Update(ctx, hero.Hero{ID: 12, Name: "Narco Prime"}))
				h, err := s.Get(ctx, 12)
				require.NoError(t, err)
				assert.Equal(t, "Narco Prime", h.Name)

				assert.ErrorIs(t, s.Update(ctx, hero.Hero{ID: 99, Name: "x"}), ErrNotFound)
			})

			t.Run("delete", func(t *testing.T) {
				s := open()
				defer s.Close()
				require.NoError(t, s.Delete(ctx, 15))
				_, err := s.Get(ctx, 15)
				assert.ErrorIs(t, err, ErrNotFound)
				assert.ErrorIs(t, s.Delete(ctx, 15), ErrNotFound)
			})
		})
	}
}

func TestMemoryStore_EmptyStartsAtFirstID(t *testing.T) {
	s := NewMemoryStore(nil)
	h, err := s.Create(context.Background(), "Robin")
	require.NoError(t, err)
	assert.Equal(t, firstID, h.ID)
}

func TestBadgerStore_EmptyStartsAtFirstID(t *testing.T) {
	s, err := OpenBadgerStore("", nil)
	require.NoError(t, err)
	defer s.Close()
	h, err := s.Create(context.Background(), "Robin")
	require.NoError(t, err)
	assert.Equal(t, firstID, h.ID)
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenBadgerStore(dir, DefaultHeroes())
	require.NoError(t, err)
	_, err = s.Create(context.Background(), "Robin")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening must not reseed over existing data.
	s, err = OpenBadgerStore(dir, []hero.Hero{{ID: 1, Name: "Other"}})
	require.NoError(t, err)
	defer s.Close()
	heroes, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, heroes, 11)
	assert.Equal(t, "Robin", heroes[10].Name)
}
