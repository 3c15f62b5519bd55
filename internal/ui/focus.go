package ui

import "slices"

// FocusManager tracks which named region of a screen has the keyboard.
type FocusManager struct {
	Current  string
	Order    []string // tab order
	OnChange func(from, to string)
}

// Next moves focus forward in Order, wrapping, and returns the new id.
func (f *FocusManager) Next() string {
	return f.step(1)
}

// Prev moves focus backward in Order, wrapping.
func (f *FocusManager) Prev() string {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := slices.Index(f.Order, f.Current)
	if idx < 0 && delta < 0 {
		idx = 0
	}
	next := (idx + delta + len(f.Order)) % len(f.Order)
	f.change(f.Order[next])
	return f.Current
}

// SetFocus focuses id. Returns false, leaving focus alone, if id is not in Order.
func (f *FocusManager) SetFocus(id string) bool {
	if !slices.Contains(f.Order, id) {
		return false
	}
	f.change(id)
	return true
}

func (f *FocusManager) change(to string) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}
