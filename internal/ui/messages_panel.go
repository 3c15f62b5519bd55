package ui

import (
	"fmt"
	"strings"

	"heroes/internal/ui/textutil"
)

// MessageLog is the shared message log the panel renders.
type MessageLog interface {
	Add(message string)
	Clear()
	Tail(n int) []string
	Len() int
}

// MessagesPanel renders the newest log entries under the current screen.
// It draws nothing while the log is empty.
type MessagesPanel struct {
	Log   MessageLog
	Lines int
	Width int
}

func NewMessagesPanel(log MessageLog) *MessagesPanel {
	return &MessagesPanel{Log: log, Lines: 5, Width: 80}
}

func (p *MessagesPanel) View() string {
	if p.Log == nil || p.Log.Len() == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Styles.Section.Render("Messages") + " " + Styles.Hint.Render("(SPC m c to clear)") + "\n")
	for _, m := range p.Log.Tail(p.Lines) {
		b.WriteString(Styles.Muted.Render(textutil.Truncate(m, max(p.Width-2, 10))) + "\n")
	}
	if hidden := p.Log.Len() - p.Lines; hidden > 0 {
		b.WriteString(Styles.Empty.Render(fmt.Sprintf("… %d older", hidden)) + "\n")
	}
	return Styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}
