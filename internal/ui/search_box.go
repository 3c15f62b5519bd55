package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"heroes/internal/hero"
	"heroes/internal/search"
	"heroes/internal/ui/textutil"
)

// SearchBox is the dashboard's hero search: every edit of the input is
// emitted into the pipeline, and the latest batch is listed below it.
type SearchBox struct {
	input    textinput.Model
	searcher Searcher
	Term     string // term the displayed results answer
	Results  []hero.Hero
	Selected int
}

func NewSearchBox(searcher Searcher) *SearchBox {
	ti := textinput.New()
	ti.Placeholder = "hero name"
	ti.Prompt = "Search: "
	ti.Width = 40
	ti.CharLimit = 64
	return &SearchBox{input: ti, searcher: searcher}
}

func (s *SearchBox) Focus() tea.Cmd {
	return s.input.Focus()
}

func (s *SearchBox) Blur() {
	s.input.Blur()
}

func (s *SearchBox) Focused() bool {
	return s.input.Focused()
}

// Value is the text currently typed.
func (s *SearchBox) Value() string {
	return s.input.Value()
}

// SetBatch replaces the results with b. Batches arrive whole; nothing is merged.
func (s *SearchBox) SetBatch(b search.Batch) {
	s.Term = b.Term
	s.Results = b.Heroes
	s.Selected = min(s.Selected, max(len(s.Results)-1, 0))
}

// SelectedHero returns the highlighted result.
func (s *SearchBox) SelectedHero() (hero.Hero, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Results) {
		return hero.Hero{}, false
	}
	return s.Results[s.Selected], true
}

// Update handles a key while the box has focus.
func (s *SearchBox) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "up", "ctrl+p":
			if s.Selected > 0 {
				s.Selected--
			}
			return nil
		case "down", "ctrl+n":
			if s.Selected < len(s.Results)-1 {
				s.Selected++
			}
			return nil
		case "enter":
			if h, ok := s.SelectedHero(); ok {
				return navigateCmd(Route{Mode: ModeDetail, ID: h.ID}.Path())
			}
			return nil
		}
	}
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if after := s.input.Value(); after != before && s.searcher != nil {
		s.searcher.Emit(after)
	}
	return cmd
}

func (s *SearchBox) View() string {
	var b strings.Builder
	b.WriteString(Styles.Section.Render("Hero Search") + "\n")
	b.WriteString(s.input.View() + "\n")
	for i, h := range s.Results {
		line := fmt.Sprintf("  %s %s", Styles.ID.Render(textutil.PadLeft(fmt.Sprint(h.ID), 3)), textutil.Truncate(h.Name, 40))
		if i == s.Selected && s.Focused() {
			line = Styles.Selected.Render("> " + textutil.PadLeft(fmt.Sprint(h.ID), 3) + " " + textutil.Truncate(h.Name, 40))
		}
		b.WriteString(line + "\n")
	}
	if len(s.Results) == 0 && strings.TrimSpace(s.Term) != "" {
		b.WriteString(Styles.Empty.Render(fmt.Sprintf("  no heroes match %q", s.Term)) + "\n")
	}
	return b.String()
}
