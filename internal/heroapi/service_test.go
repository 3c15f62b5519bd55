package heroapi

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"heroes/internal/hero"
	"heroes/internal/message"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records calls and fails every call when err is set.
type fakeAPI struct {
	heroes []hero.Hero
	err    error
	calls  []string
}

func (f *fakeAPI) Heroes(ctx context.Context) ([]hero.Hero, error) {
	f.calls = append(f.calls, "list")
	return f.heroes, f.err
}

func (f *fakeAPI) Hero(ctx context.Context, id int) (hero.Hero, error) {
	f.calls = append(f.calls, "get")
	if f.err != nil {
		return hero.Hero{}, f.err
	}
	for _, h := range f.heroes {
		if h.ID == id {
			return h, nil
		}
	}
	return hero.Hero{}, ErrNotFound
}

func (f *fakeAPI) Search(ctx context.Context, term string) ([]hero.Hero, error) {
	f.calls = append(f.calls, "search")
	return f.heroes, f.err
}

func (f *fakeAPI) Create(ctx context.Context, name string) (hero.Hero, error) {
	f.calls = append(f.calls, "create:"+name)
	if f.err != nil {
		return hero.Hero{}, f.err
	}
	return hero.Hero{ID: 21, Name: name}, nil
}

func (f *fakeAPI) Update(ctx context.Context, h hero.Hero) error {
	f.calls = append(f.calls, "update:"+h.Name)
	return f.err
}

func (f *fakeAPI) Delete(ctx context.Context, id int) error {
	f.calls = append(f.calls, "delete")
	return f.err
}

func newTestService(api *fakeAPI) (*Service, *message.Log) {
	log := message.NewLog()
	return NewService(api, log, nil), log
}

func TestService_LogsAfterSuccess(t *testing.T) {
	api := &fakeAPI{heroes: []hero.Hero{{ID: 12, Name: "Narco"}}}
	s, log := newTestService(api)
	ctx := context.Background()

	assert.Len(t, s.Heroes(ctx), 1)
	_, ok := s.Hero(ctx, 12)
	assert.True(t, ok)
	assert.True(t, s.UpdateHero(ctx, hero.Hero{ID: 12, Name: "Narco"}))
	_, ok = s.AddHero(ctx, "Robin")
	assert.True(t, ok)
	assert.True(t, s.DeleteHero(ctx, 12))
	_, err := s.SearchHeroes(ctx, "nar")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"HeroService: fetched heroes",
		"HeroService: fetched hero id=12",
		"HeroService: updated hero id=12",
		"HeroService: added hero w/ id=21",
		"HeroService: deleted hero id=12",
		`HeroService: found heroes matching "nar"`,
	}, log.Messages())
}

func TestService_FailuresAreContained(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}
	s, log := newTestService(api)
	ctx := context.Background()

	heroes := s.Heroes(ctx)
	assert.NotNil(t, heroes)
	assert.Empty(t, heroes)

	h, ok := s.Hero(ctx, 12)
	assert.False(t, ok)
	assert.Equal(t, hero.Hero{}, h)

	assert.False(t, s.UpdateHero(ctx, hero.Hero{ID: 12, Name: "Narco"}))
	_, ok = s.AddHero(ctx, "Robin")
	assert.False(t, ok)
	assert.False(t, s.DeleteHero(ctx, 12))

	msgs := log.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, "HeroService: getHeroes failed: connection refused", msgs[0])
	for _, m := range msgs {
		assert.Contains(t, m, "failed")
	}
}

func TestService_NotFound(t *testing.T) {
	s, log := newTestService(&fakeAPI{})
	_, ok := s.Hero(context.Background(), 99)
	assert.False(t, ok)
	assert.Contains(t, log.Messages()[0], "getHero id=99 failed")
}

func TestService_AddHeroTrimsAndRejectsBlank(t *testing.T) {
	api := &fakeAPI{}
	s, log := newTestService(api)

	h, ok := s.AddHero(context.Background(), "  Robin  ")
	require.True(t, ok)
	assert.Equal(t, "Robin", h.Name)
	assert.Equal(t, []string{"create:Robin"}, api.calls)

	_, ok = s.AddHero(context.Background(), "   ")
	assert.False(t, ok)
	assert.Equal(t, []string{"create:Robin"}, api.calls, "blank name never reaches the API")
	assert.Equal(t, 1, log.Len())
}

func TestService_UpdateRejectsBlankName(t *testing.T) {
	api := &fakeAPI{}
	s, _ := newTestService(api)
	assert.False(t, s.UpdateHero(context.Background(), hero.Hero{ID: 12, Name: " "}))
	assert.Empty(t, api.calls)
}

func TestService_SearchHeroes(t *testing.T) {
	api := &fakeAPI{}
	s, log := newTestService(api)

	heroes, err := s.SearchHeroes(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, heroes)
	assert.Empty(t, api.calls, "blank term is not sent")

	api.err = errors.New("boom")
	_, err = s.SearchHeroes(context.Background(), "bat")
	assert.Error(t, err, "search errors are returned for the pipeline to contain")
	assert.Equal(t, 0, log.Len())

	api.err = fmt.Errorf("get: %w", context.Canceled)
	heroes, err = s.SearchHeroes(context.Background(), "bat")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, heroes)
	assert.Equal(t, 0, log.Len(), "cancellation is not a failure message")
}
