package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"heroes/internal/hero"
	"heroes/internal/ui/textutil"
)

// heroItem implements list.Item for a hero row.
type heroItem struct {
	hero.Hero
}

func (h heroItem) FilterValue() string { return h.Name }
func (h heroItem) Title() string {
	return textutil.PadLeft(fmt.Sprint(h.ID), 3) + "  " + textutil.Truncate(h.Name, 48)
}
func (h heroItem) Description() string { return "" }

// HeroesView lists every hero. a adds, d deletes, enter opens the detail.
type HeroesView struct {
	list   list.Model
	Heroes []hero.Hero
	loaded bool
}

var _ View = (*HeroesView)(nil)

func NewHeroesView() *HeroesView {
	l := list.New(nil, NewCompactListDelegate(), 80, 20)
	l.Title = "My Heroes"
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return &HeroesView{list: l}
}

// SetHeroes replaces the rows, keeping the cursor near where it was.
func (v *HeroesView) SetHeroes(heroes []hero.Hero) {
	idx := v.list.Index()
	v.Heroes = heroes
	v.loaded = true
	items := make([]list.Item, len(heroes))
	for i, h := range heroes {
		items[i] = heroItem{Hero: h}
	}
	v.list.SetItems(items)
	if len(items) > 0 {
		v.list.Select(min(idx, len(items)-1))
	}
}

// SetSize fits the list into the space left under the header.
func (v *HeroesView) SetSize(width, height int) {
	v.list.SetSize(width, max(height, 3))
}

// Selected returns the hero under the cursor.
func (v *HeroesView) Selected() (hero.Hero, bool) {
	it, ok := v.list.SelectedItem().(heroItem)
	if !ok {
		return hero.Hero{}, false
	}
	return it.Hero, true
}

func (v *HeroesView) Init() tea.Cmd {
	return nil
}

func (v *HeroesView) Update(msg tea.Msg) (View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "a":
			return v, msgCmd(ShowAddHeroMsg{})
		case "d", "x":
			if h, ok := v.Selected(); ok {
				return v, msgCmd(DeleteHeroMsg{ID: h.ID})
			}
			return v, nil
		case "enter":
			if h, ok := v.Selected(); ok {
				return v, navigateCmd(Route{Mode: ModeDetail, ID: h.ID}.Path())
			}
			return v, nil
		}
	}
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *HeroesView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render(fmt.Sprintf("My Heroes (%d)", len(v.Heroes))) + "\n")
	b.WriteString(Styles.Hint.Render("a: add  d: delete  enter: details  esc: back") + "\n\n")
	switch {
	case !v.loaded:
		b.WriteString(Styles.Empty.Render("Loading heroes…"))
	case len(v.Heroes) == 0:
		b.WriteString(Styles.Empty.Render("No heroes. Press a to add one."))
	default:
		b.WriteString(v.list.View())
	}
	return b.String()
}
