package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"heroes/internal/hero"
	"heroes/internal/ui/textutil"
)

const (
	focusTop    = "top"
	focusSearch = "search"
)

// DashboardView shows the top heroes as tiles and hosts the hero search.
// Tab or / moves focus to the search box; esc moves it back.
type DashboardView struct {
	Top      []hero.Hero
	Selected int
	Search   *SearchBox
	focus    *FocusManager
	loaded   bool
}

var _ View = (*DashboardView)(nil)

func NewDashboardView(searcher Searcher) *DashboardView {
	d := &DashboardView{Search: NewSearchBox(searcher)}
	d.focus = &FocusManager{Current: focusTop, Order: []string{focusTop, focusSearch}}
	return d
}

// SetTop replaces the tiles, keeping the selection in range.
func (d *DashboardView) SetTop(top []hero.Hero) {
	d.Top = top
	d.loaded = true
	d.Selected = min(d.Selected, max(len(top)-1, 0))
}

// FocusSearch gives the search box the keyboard.
func (d *DashboardView) FocusSearch() tea.Cmd {
	d.focus.SetFocus(focusSearch)
	return d.Search.Focus()
}

// BlurSearch returns the keyboard to the tiles.
func (d *DashboardView) BlurSearch() {
	d.focus.SetFocus(focusTop)
	d.Search.Blur()
}

// CapturingInput is true while the search box has focus.
func (d *DashboardView) CapturingInput() bool {
	return d.focus.Current == focusSearch
}

func (d *DashboardView) Init() tea.Cmd {
	return nil
}

func (d *DashboardView) Update(msg tea.Msg) (View, tea.Cmd) {
	k, isKey := msg.(tea.KeyMsg)
	if d.CapturingInput() {
		if isKey && (k.String() == "esc" || k.String() == "tab") {
			d.BlurSearch()
			return d, nil
		}
		return d, d.Search.Update(msg)
	}
	if !isKey {
		return d, nil
	}
	switch k.String() {
	case "tab", "/":
		return d, d.FocusSearch()
	case "l", "right", "j", "down":
		if d.Selected < len(d.Top)-1 {
			d.Selected++
		}
	case "h", "left", "k", "up":
		if d.Selected > 0 {
			d.Selected--
		}
	case "enter":
		if d.Selected < len(d.Top) {
			return d, navigateCmd(Route{Mode: ModeDetail, ID: d.Top[d.Selected].ID}.Path())
		}
	}
	return d, nil
}

func (d *DashboardView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Top Heroes") + "\n")
	switch {
	case !d.loaded:
		b.WriteString(Styles.Empty.Render("Loading heroes…") + "\n")
	case len(d.Top) == 0:
		b.WriteString(Styles.Empty.Render("No heroes yet") + "\n")
	default:
		tiles := make([]string, len(d.Top))
		for i, h := range d.Top {
			style := tileStyle
			if i == d.Selected && !d.CapturingInput() {
				style = tileSelectedStyle
			}
			tiles[i] = style.Render(textutil.Truncate(h.Name, 14))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...) + "\n")
	}
	b.WriteString("\n" + d.Search.View())
	if !d.CapturingInput() {
		b.WriteString(Styles.Hint.Render("←/→ select  enter: details  /: search") + "\n")
	} else {
		b.WriteString(Styles.Hint.Render("↑/↓ select  enter: details  esc: leave search") + "\n")
	}
	return b.String()
}

var (
	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDim)).
			Foreground(lipgloss.Color(ColorText)).
			Width(16).
			Align(lipgloss.Center)
	tileSelectedStyle = tileStyle.
				BorderForeground(lipgloss.Color(ColorHighlight)).
				Foreground(lipgloss.Color(ColorHighlight)).
				Bold(true)
)
