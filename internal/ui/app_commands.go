package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"heroes/internal/hero"
	"heroes/internal/search"
)

// HeroService is the fault-contained hero API the views call. Failures are
// reported to the message log by the implementation and surface here only
// as fallback values.
type HeroService interface {
	Heroes(ctx context.Context) []hero.Hero
	Hero(ctx context.Context, id int) (hero.Hero, bool)
	UpdateHero(ctx context.Context, h hero.Hero) bool
	AddHero(ctx context.Context, name string) (hero.Hero, bool)
	DeleteHero(ctx context.Context, id int) bool
}

// Searcher is the debounced search pipeline as the dashboard sees it.
type Searcher interface {
	Emit(term string)
	Results() <-chan search.Batch
}

func loadHeroesCmd(ctx context.Context, svc HeroService, seq int) tea.Cmd {
	return func() tea.Msg {
		return HeroesLoadedMsg{Heroes: svc.Heroes(ctx), Seq: seq}
	}
}

func loadHeroCmd(ctx context.Context, svc HeroService, id int) tea.Cmd {
	return func() tea.Msg {
		h, ok := svc.Hero(ctx, id)
		return HeroLoadedMsg{ID: id, Hero: h, OK: ok}
	}
}

func saveHeroCmd(ctx context.Context, svc HeroService, h hero.Hero) tea.Cmd {
	return func() tea.Msg {
		return HeroSavedMsg{Hero: h, OK: svc.UpdateHero(ctx, h)}
	}
}

func addHeroCmd(ctx context.Context, svc HeroService, name string) tea.Cmd {
	return func() tea.Msg {
		h, ok := svc.AddHero(ctx, name)
		return HeroAddedMsg{Hero: h, OK: ok}
	}
}

func deleteHeroCmd(ctx context.Context, svc HeroService, id int) tea.Cmd {
	return func() tea.Msg {
		return HeroDeletedMsg{ID: id, OK: svc.DeleteHero(ctx, id)}
	}
}

// waitForBatch blocks until the pipeline delivers the next batch. The app
// re-issues it after every SearchResultsMsg.
func waitForBatch(results <-chan search.Batch) tea.Cmd {
	return func() tea.Msg {
		b, ok := <-results
		if !ok {
			return searchClosedMsg{}
		}
		return SearchResultsMsg{Batch: b}
	}
}

func navigateCmd(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
