package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"heroes/internal/hero"
)

// DetailView edits one hero's name. ctrl+s saves and goes back, esc goes
// back without saving.
type DetailView struct {
	ID       int
	Hero     hero.Hero
	Loaded   bool
	NotFound bool
	input    textinput.Model
}

var _ View = (*DetailView)(nil)

// NewDetailView starts in the loading state for hero id.
func NewDetailView(id int) *DetailView {
	ti := textinput.New()
	ti.Prompt = "name: "
	ti.Placeholder = "name"
	ti.CharLimit = 64
	ti.Width = 40
	return &DetailView{ID: id, input: ti}
}

// SetHero fills the form from a fetch result. ok=false marks the hero missing.
func (v *DetailView) SetHero(h hero.Hero, ok bool) tea.Cmd {
	if !ok {
		v.NotFound = true
		return nil
	}
	v.Hero = h
	v.Loaded = true
	v.input.SetValue(h.Name)
	v.input.CursorEnd()
	return v.input.Focus()
}

// Edited is the hero as currently shown in the form, name trimmed.
func (v *DetailView) Edited() hero.Hero {
	return hero.Hero{ID: v.Hero.ID, Name: strings.TrimSpace(v.input.Value())}
}

// CapturingInput keeps every key in the form so names can contain any rune.
func (v *DetailView) CapturingInput() bool {
	return true
}

func (v *DetailView) Init() tea.Cmd {
	return nil
}

func (v *DetailView) Update(msg tea.Msg) (View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return v, msgCmd(BackMsg{})
		case "ctrl+s":
			if !v.Loaded {
				return v, nil
			}
			return v, msgCmd(SaveHeroMsg{Hero: v.Edited()})
		}
	}
	if !v.Loaded {
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *DetailView) View() string {
	var b strings.Builder
	switch {
	case v.NotFound:
		b.WriteString(Styles.TitleWarning.Render(fmt.Sprintf("No hero with id %d", v.ID)) + "\n")
		b.WriteString(Styles.Hint.Render("esc: back") + "\n")
	case !v.Loaded:
		b.WriteString(Styles.Empty.Render(fmt.Sprintf("Loading hero %d…", v.ID)) + "\n")
	default:
		b.WriteString(Styles.Title.Render(strings.ToUpper(v.input.Value())+" Details") + "\n\n")
		b.WriteString("id: " + Styles.ID.Render(fmt.Sprint(v.Hero.ID)) + "\n")
		b.WriteString(v.input.View() + "\n\n")
		b.WriteString(Styles.Hint.Render("ctrl+s: save  esc: back") + "\n")
	}
	return b.String()
}
