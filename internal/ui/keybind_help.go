package ui

import (
	"github.com/charmbracelet/bubbles/help"
)

// RenderKeybindHelp draws the transient hint bar shown while a leader
// sequence is pending. Empty when nothing can follow.
func RenderKeybindHelp(handler *KeyHandler, mode AppMode) string {
	if handler == nil || !handler.LeaderWaiting {
		return ""
	}
	bindings := NewKeyMap(handler, mode).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}
	h := help.New()
	h.Styles.ShortKey = Styles.Selected
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	content := Styles.Muted.Render(handler.CurrentSeq()) + " " + h.ShortHelpView(bindings)
	return Styles.HelpBox.Render(content)
}
