package ui

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal drawn over the current screen. It receives every key
// until it is popped.
type Overlay struct {
	View    View
	Dismiss string // key that closes the overlay without acting, e.g. "esc"
}

// IsDismissKey reports whether key closes this overlay.
func (o Overlay) IsDismissKey(key string) bool {
	return o.Dismiss != "" && key == o.Dismiss
}

// OverlayStack holds open overlays; the topmost one gets input.
type OverlayStack struct {
	Stack []Overlay
}

func (s *OverlayStack) Push(o Overlay) {
	s.Stack = append(s.Stack, o)
}

func (s *OverlayStack) Pop() (Overlay, bool) {
	o, ok := s.Peek()
	if ok {
		s.Stack = s.Stack[:len(s.Stack)-1]
	}
	return o, ok
}

func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// Clear closes every overlay, used when navigating away.
func (s *OverlayStack) Clear() {
	s.Stack = nil
}

// UpdateTop routes msg to the topmost overlay and stores the updated view.
// The caller runs the returned cmd.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := &s.Stack[len(s.Stack)-1]
	next, cmd := top.View.Update(msg)
	top.View = next
	return cmd, true
}
