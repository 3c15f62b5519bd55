package ui

import (
	"heroes/internal/hero"
	"heroes/internal/search"
)

// NavigateMsg asks the app to open Path, pushing the current route on the
// back stack.
type NavigateMsg struct {
	Path string
}

// BackMsg returns to the previous route (the dashboard when there is none).
type BackMsg struct{}

// HeroesLoadedMsg carries the full hero list. Seq numbers the reload that
// fetched it, in issue order.
type HeroesLoadedMsg struct {
	Heroes []hero.Hero
	Seq    int
}

// HeroLoadedMsg answers a detail fetch. OK is false when it failed.
type HeroLoadedMsg struct {
	ID   int
	Hero hero.Hero
	OK   bool
}

// SaveHeroMsg is sent by the detail view on ctrl+s.
type SaveHeroMsg struct {
	Hero hero.Hero
}

// HeroSavedMsg reports the outcome of a save.
type HeroSavedMsg struct {
	Hero hero.Hero
	OK   bool
}

// ShowAddHeroMsg opens the add-hero modal.
type ShowAddHeroMsg struct{}

// AddHeroMsg asks to create a hero with Name (already trimmed).
type AddHeroMsg struct {
	Name string
}

// HeroAddedMsg carries the created hero with its server-assigned id.
type HeroAddedMsg struct {
	Hero hero.Hero
	OK   bool
}

// DeleteHeroMsg removes a hero from the list and from the server.
type DeleteHeroMsg struct {
	ID int
}

// HeroDeletedMsg reports the server side of a delete; the list has
// already dropped the hero.
type HeroDeletedMsg struct {
	ID int
	OK bool
}

// SearchResultsMsg delivers one batch from the search pipeline.
type SearchResultsMsg struct {
	Batch search.Batch
}

// searchClosedMsg is sent once the pipeline's result channel is closed.
type searchClosedMsg struct{}

// ClearMessagesMsg empties the message log (SPC m c).
type ClearMessagesMsg struct{}

// DismissModalMsg closes the topmost overlay.
type DismissModalMsg struct{}

// FocusSearchMsg moves focus to the dashboard search box.
type FocusSearchMsg struct{}
