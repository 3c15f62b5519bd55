package heroapi

import (
	"context"
	"fmt"
	"strings"

	"heroes/internal/hero"
	"heroes/internal/message"

	"go.uber.org/zap"
)

// Service is the view-facing hero data service. No method returns an error to a view
// except SearchHeroes, whose failures the search pipeline contains.
type Service struct {
	api    API
	sink   message.Sink
	logger *zap.Logger
}

// NewService wraps api. sink receives "HeroService: ..." messages after each call completes.
func NewService(api API, sink message.Sink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, sink: sink, logger: logger}
}

// Heroes returns all heroes, or an empty list on failure.
func (s *Service) Heroes(ctx context.Context) []hero.Hero {
	heroes, err := s.api.Heroes(ctx)
	if err != nil {
		s.fail("getHeroes", err)
		return []hero.Hero{}
	}
	s.log("fetched heroes")
	return heroes
}

// Hero returns the hero with id. ok is false when it is missing or the call failed.
func (s *Service) Hero(ctx context.Context, id int) (h hero.Hero, ok bool) {
	h, err := s.api.Hero(ctx, id)
	if err != nil {
		s.fail(fmt.Sprintf("getHero id=%d", id), err)
		return hero.Hero{}, false
	}
	s.log(fmt.Sprintf("fetched hero id=%d", id))
	return h, true
}

// UpdateHero saves h. Returns false on failure.
func (s *Service) UpdateHero(ctx context.Context, h hero.Hero) bool {
	name, err := hero.NormalizeName(h.Name)
	if err != nil {
		s.logger.Debug("update skipped", zap.Int("id", h.ID), zap.Error(err))
		return false
	}
	h.Name = name
	if err := s.api.Update(ctx, h); err != nil {
		s.fail("updateHero", err)
		return false
	}
	s.log(fmt.Sprintf("updated hero id=%d", h.ID))
	return true
}

// AddHero creates a hero named name (trimmed). A blank name never reaches the API.
func (s *Service) AddHero(ctx context.Context, name string) (hero.Hero, bool) {
	name, err := hero.NormalizeName(name)
	if err != nil {
		s.logger.Debug("add skipped", zap.Error(err))
		return hero.Hero{}, false
	}
	h, err := s.api.Create(ctx, name)
	if err != nil {
		s.fail("addHero", err)
		return hero.Hero{}, false
	}
	s.log(fmt.Sprintf("added hero w/ id=%d", h.ID))
	return h, true
}

// DeleteHero deletes the hero with id. Returns false on failure.
func (s *Service) DeleteHero(ctx context.Context, id int) bool {
	if err := s.api.Delete(ctx, id); err != nil {
		s.fail("deleteHero", err)
		return false
	}
	s.log(fmt.Sprintf("deleted hero id=%d", id))
	return true
}

// SearchHeroes returns heroes whose name contains term. A blank term returns an empty
// list without calling the API. Errors, including cancellation, go back to the
// caller unlogged.
func (s *Service) SearchHeroes(ctx context.Context, term string) ([]hero.Hero, error) {
	if strings.TrimSpace(term) == "" {
		return []hero.Hero{}, nil
	}
	heroes, err := s.api.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	s.log(fmt.Sprintf("found heroes matching %q", term))
	return heroes, nil
}

func (s *Service) log(msg string) {
	if s.sink != nil {
		s.sink.Add("HeroService: " + msg)
	}
}

func (s *Service) fail(op string, err error) {
	s.logger.Warn("hero api call failed", zap.String("op", op), zap.Error(err))
	s.log(fmt.Sprintf("%s failed: %v", op, err))
}
