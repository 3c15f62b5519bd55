package ui

import (
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

// KeybindRegistry maps key sequences to commands.
// Sequences use spacemacs notation: "SPC" for space, "SPC m c" for SPC then m then c.
// Single keys are tea key strings: "q", "esc", "ctrl+c".
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	modeFilter   map[string][]AppMode // absent = every mode
}

func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
		modeFilter:   make(map[string][]AppMode),
	}
}

// Bind registers seq for every mode without a help description.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDesc(seq, cmd, "")
}

// BindWithDesc registers seq for every mode.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.BindWithDescForMode(seq, cmd, desc, nil)
}

// BindWithDescForMode registers seq, active only in modes (all modes when empty).
// Rebinding a sequence replaces the previous command.
func (r *KeybindRegistry) BindWithDescForMode(seq string, cmd tea.Cmd, desc string, modes []AppMode) {
	n := normalizeSeq(seq)
	r.bindings[n] = cmd
	if desc != "" {
		r.descriptions[n] = desc
	}
	if len(modes) > 0 {
		r.modeFilter[n] = modes
	} else {
		delete(r.modeFilter, n)
	}
}

// Lookup returns the command bound to seq in mode, or nil.
func (r *KeybindRegistry) Lookup(seq string, mode AppMode) tea.Cmd {
	n := normalizeSeq(seq)
	if !r.appliesToMode(n, mode) {
		return nil
	}
	return r.bindings[n]
}

// HasPrefix reports whether a longer binding active in mode starts with seq.
func (r *KeybindRegistry) HasPrefix(seq string, mode AppMode) bool {
	prefix := normalizeSeq(seq) + " "
	for k := range r.bindings {
		if strings.HasPrefix(k, prefix) && r.appliesToMode(k, mode) {
			return true
		}
	}
	return false
}

// submenuLabel names the first-level leader keys that open a submenu.
var submenuLabel = map[string]string{
	"g": "Go to",
	"h": "Heroes",
	"m": "Messages",
}

// LeaderHints returns the next keys available after currentSeq ("" means
// right after SPC) in mode, mapped to their description. Keys that open a
// submenu are labelled with the submenu name.
func (r *KeybindRegistry) LeaderHints(currentSeq string, mode AppMode) map[string]string {
	out := make(map[string]string)
	prefix := "SPC "
	if currentSeq != "" {
		prefix = normalizeSeq(currentSeq) + " "
	}
	for seq, cmd := range r.bindings {
		if cmd == nil || !strings.HasPrefix(seq, prefix) || !r.appliesToMode(seq, mode) {
			continue
		}
		rest := strings.Fields(strings.TrimPrefix(seq, prefix))
		if len(rest) == 0 {
			continue
		}
		next := rest[0]
		if len(rest) > 1 {
			out[next] = lo.ValueOr(submenuLabel, next, next+"…")
			continue
		}
		out[next] = lo.ValueOr(r.descriptions, seq, seq)
	}
	return out
}

func (r *KeybindRegistry) appliesToMode(seq string, mode AppMode) bool {
	modes, ok := r.modeFilter[seq]
	return !ok || slices.Contains(modes, mode)
}

// normalizeSeq turns tea's space spellings into "SPC".
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToSeqPart(p)
	}
	return strings.Join(parts, " ")
}

func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

// KeyHandler tracks leader state and dispatches keys to the registry.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderKey     string // tea.KeyMsg.String() of the leader; space is " "
	LeaderSeq     string
	LeaderWaiting bool
	Buffer        []string // sequence typed since the leader
}

func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{
		Registry:  reg,
		LeaderKey: " ",
		LeaderSeq: "SPC",
	}
}

// Handle consumes msg if it belongs to the keybind system and returns the
// bound command, if any. Unconsumed keys belong to the current view.
func (h *KeyHandler) Handle(msg tea.KeyMsg, mode AppMode) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	if s == "esc" {
		if h.LeaderWaiting {
			h.reset()
			return true, nil
		}
		return false, nil
	}

	if !h.LeaderWaiting && s == h.LeaderKey {
		h.LeaderWaiting = true
		h.Buffer = []string{h.LeaderSeq}
		return true, nil
	}

	if h.LeaderWaiting {
		h.Buffer = append(h.Buffer, keyToSeqPart(s))
		seq := strings.Join(h.Buffer, " ")
		if c := h.Registry.Lookup(seq, mode); c != nil {
			h.reset()
			return true, c
		}
		if h.Registry.HasPrefix(seq, mode) {
			return true, nil
		}
		// Dead end: swallow the key and leave leader mode.
		h.reset()
		return true, nil
	}

	if c := h.Registry.Lookup(s, mode); c != nil {
		return true, c
	}
	return false, nil
}

// CurrentSeq is the pending leader sequence, e.g. "SPC m".
func (h *KeyHandler) CurrentSeq() string {
	return strings.Join(h.Buffer, " ")
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// KeyMap adapts the leader hints for the current mode to bubbles/help.
type KeyMap struct {
	handler *KeyHandler
	mode    AppMode
}

var _ help.KeyMap = KeyMap{}

func NewKeyMap(handler *KeyHandler, mode AppMode) KeyMap {
	return KeyMap{handler: handler, mode: mode}
}

// ShortHelp lists the next leader keys in key order, followed by esc.
func (km KeyMap) ShortHelp() []key.Binding {
	if km.handler == nil || km.handler.Registry == nil {
		return nil
	}
	hints := km.handler.Registry.LeaderHints(km.handler.CurrentSeq(), km.mode)
	if len(hints) == 0 {
		return nil
	}
	keys := lo.Keys(hints)
	sort.Strings(keys)
	bindings := lo.Map(keys, func(k string, _ int) key.Binding {
		return key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k]))
	})
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

func (km KeyMap) FullHelp() [][]key.Binding {
	short := km.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	return [][]key.Binding{short}
}
