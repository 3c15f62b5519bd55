package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AddHeroModal asks for a new hero's name. Blank names are ignored and the
// modal stays open.
type AddHeroModal struct {
	input textinput.Model
}

var _ View = (*AddHeroModal)(nil)

func NewAddHeroModal() *AddHeroModal {
	ti := textinput.New()
	ti.Placeholder = "Hero name"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()
	return &AddHeroModal{input: ti}
}

func (m *AddHeroModal) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AddHeroModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return m, msgCmd(DismissModalMsg{})
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				return m, nil
			}
			return m, msgCmd(AddHeroMsg{Name: name})
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *AddHeroModal) View() string {
	content := Styles.Title.Render("Add hero") + "\n\n"
	content += m.input.View() + "\n\n"
	content += Styles.Hint.Render("Enter: add  Esc: cancel")
	return Styles.Box.Render(content)
}
