package ui

import tea "github.com/charmbracelet/bubbletea"

// View is one screen or region with its own Elm-style init, update and render.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// inputCapturer is implemented by views that own a focused text input.
// While CapturingInput is true, plain keys go to the view instead of the
// global keybinds; only ctrl+c stays global.
type inputCapturer interface {
	CapturingInput() bool
}

func capturesInput(v View) bool {
	c, ok := v.(inputCapturer)
	return ok && c.CapturingInput()
}
