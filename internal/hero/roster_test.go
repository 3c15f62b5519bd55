package hero

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeroes() []Hero {
	return []Hero{
		{ID: 11, Name: "Mr. Nice"},
		{ID: 12, Name: "Narco"},
		{ID: 13, Name: "Bombasto"},
		{ID: 14, Name: "Celeritas"},
		{ID: 15, Name: "Magneta"},
		{ID: 16, Name: "RubberMan"},
	}
}

func TestRoster_AppendKeepsIDsUnique(t *testing.T) {
	r := NewRoster(testHeroes())
	r.Append(Hero{ID: 12, Name: "Narco II"})

	require.Equal(t, 6, r.Len())
	h, ok := r.Get(12)
	require.True(t, ok)
	assert.Equal(t, "Narco II", h.Name)

	r.Append(Hero{ID: 21, Name: "Robin"})
	heroes := r.Heroes()
	assert.Equal(t, 7, len(heroes))
	assert.Equal(t, 21, heroes[6].ID, "new hero goes to the end")
}

func TestRoster_Remove(t *testing.T) {
	r := NewRoster(testHeroes())

	assert.True(t, r.Remove(13))
	assert.False(t, r.Contains(13))
	assert.False(t, r.Remove(13), "second remove is a no-op")
	assert.Equal(t, 5, r.Len())
}

func TestRoster_Replace(t *testing.T) {
	r := NewRoster(testHeroes())

	assert.True(t, r.Replace(Hero{ID: 14, Name: "Speedy"}))
	assert.False(t, r.Replace(Hero{ID: 99, Name: "Nobody"}))
	h, _ := r.Get(14)
	assert.Equal(t, "Speedy", h.Name)
	assert.Equal(t, 14, r.Heroes()[3].ID, "replace keeps position")
}

func TestRoster_Top(t *testing.T) {
	r := NewRoster(testHeroes())
	top := r.Top()
	require.Len(t, top, 4)
	assert.Equal(t, []int{12, 13, 14, 15}, []int{top[0].ID, top[1].ID, top[2].ID, top[3].ID})

	assert.Empty(t, NewRoster(nil).Top())
	assert.Empty(t, NewRoster(testHeroes()[:1]).Top())
	assert.Len(t, NewRoster(testHeroes()[:3]).Top(), 2)
}

func TestRoster_HeroesReturnsCopy(t *testing.T) {
	r := NewRoster(testHeroes())
	hs := r.Heroes()
	hs[0].Name = "changed"
	h, _ := r.Get(11)
	assert.Equal(t, "Mr. Nice", h.Name)
}

func TestNormalizeName(t *testing.T) {
	name, err := NormalizeName("  Robin  ")
	require.NoError(t, err)
	assert.Equal(t, "Robin", name)

	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := NormalizeName(in)
		assert.ErrorIs(t, err, ErrBlankName, "input %q", in)
	}
}
