package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"heroes/internal/hero"
)

// Deps wires the app to its collaborators.
type Deps struct {
	Service   HeroService
	Search    Searcher // nil disables search
	Messages  MessageLog
	StartPath string // route opened first; "" is the dashboard
	Context   context.Context
}

// AppModel is the root model. It owns the roster and the navigation state
// and switches between the dashboard, heroes and detail screens.
type AppModel struct {
	Mode       AppMode
	Route      Route
	Dashboard  *DashboardView
	Heroes     *HeroesView
	Detail     *DetailView
	Overlays   OverlayStack
	History    History
	KeyHandler *KeyHandler
	Messages   *MessagesPanel
	Roster     *hero.Roster

	ctx      context.Context
	service  HeroService
	searcher Searcher
	log      MessageLog
	start    Route
	spinner  spinner.Model
	pending  int // requests in flight
	loadSeq  int // last list reload issued
	deleting map[int]pendingDelete
	width    int
	height   int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel builds the app with the default keybinds. It fails only if
// StartPath is not a known route.
func NewAppModel(deps Deps) (*AppModel, error) {
	start, err := ParseRoute(deps.StartPath)
	if err != nil {
		return nil, err
	}
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.ID

	return &AppModel{
		Mode:       start.Mode,
		Route:      start,
		Dashboard:  NewDashboardView(deps.Search),
		Heroes:     NewHeroesView(),
		KeyHandler: NewKeyHandler(defaultKeybinds()),
		Messages:   NewMessagesPanel(deps.Messages),
		Roster:     hero.NewRoster(nil),
		ctx:        ctx,
		service:    deps.Service,
		searcher:   deps.Search,
		log:        deps.Messages,
		start:      start,
		spinner:    s,
		deleting:   make(map[int]pendingDelete),
	}, nil
}

func defaultKeybinds() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC g d", navigateCmd("dashboard"), "Dashboard")
	reg.BindWithDesc("SPC g h", navigateCmd("heroes"), "Heroes")
	reg.BindWithDesc("SPC s", msgCmd(FocusSearchMsg{}), "Search")
	reg.BindWithDesc("SPC m c", msgCmd(ClearMessagesMsg{}), "Clear messages")
	reg.BindWithDescForMode("SPC h a", msgCmd(ShowAddHeroMsg{}), "Add hero", []AppMode{ModeHeroes})
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init opens the start route and starts listening for search results.
func (a *appModelAdapter) Init() tea.Cmd {
	cmds := []tea.Cmd{a.open(a.start)}
	if a.searcher != nil {
		cmds = append(cmds, waitForBatch(a.searcher.Results()))
	}
	return tea.Batch(cmds...)
}

func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.Messages.Width = msg.Width
		a.Heroes.SetSize(msg.Width, msg.Height-12) // header, hints, messages panel
		return a, nil
	case spinner.TickMsg:
		if a.pending == 0 {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case tea.KeyMsg:
		return a.handleKey(msg)

	case NavigateMsg:
		r, err := ParseRoute(msg.Path)
		if err != nil {
			a.addMessage(fmt.Sprintf("Router: %v", err))
			return a, nil
		}
		a.History.Push(a.Route)
		return a, a.open(r)
	case BackMsg:
		return a, a.back()

	case HeroesLoadedMsg:
		a.done()
		a.Roster = hero.NewRoster(a.withoutDeleted(msg.Heroes, msg.Seq))
		a.syncViews()
		return a, nil
	case HeroLoadedMsg:
		a.done()
		if a.Detail != nil && a.Detail.ID == msg.ID {
			return a, a.Detail.SetHero(msg.Hero, msg.OK)
		}
		return a, nil
	case SaveHeroMsg:
		return a, a.request(saveHeroCmd(a.ctx, a.service, msg.Hero))
	case HeroSavedMsg:
		a.done()
		if msg.OK {
			a.Roster.Replace(msg.Hero)
			a.syncViews()
		}
		return a, a.back()

	case ShowAddHeroMsg:
		modal := NewAddHeroModal()
		a.Overlays.Push(Overlay{View: modal, Dismiss: "esc"})
		return a, modal.Init()
	case AddHeroMsg:
		a.Overlays.Pop()
		name := strings.TrimSpace(msg.Name)
		if name == "" {
			return a, nil
		}
		return a, a.request(addHeroCmd(a.ctx, a.service, name))
	case HeroAddedMsg:
		a.done()
		if msg.OK {
			a.Roster.Append(msg.Hero)
			a.syncViews()
		}
		return a, nil
	case DeleteHeroMsg:
		// The row goes away now; neither the request's outcome nor a reload
		// already in flight brings it back.
		a.Roster.Remove(msg.ID)
		a.deleting[msg.ID] = pendingDelete{}
		a.syncViews()
		return a, a.request(deleteHeroCmd(a.ctx, a.service, msg.ID))
	case HeroDeletedMsg:
		a.done()
		if _, ok := a.deleting[msg.ID]; ok {
			a.deleting[msg.ID] = pendingDelete{done: true, seq: a.loadSeq}
		}
		return a, nil

	case SearchResultsMsg:
		a.Dashboard.Search.SetBatch(msg.Batch)
		return a, waitForBatch(a.searcher.Results())
	case searchClosedMsg:
		return a, nil
	case FocusSearchMsg:
		var cmd tea.Cmd
		if a.Mode != ModeDashboard {
			a.History.Push(a.Route)
			cmd = a.open(Route{Mode: ModeDashboard})
		}
		return a, tea.Batch(cmd, a.Dashboard.FocusSearch())

	case ClearMessagesMsg:
		if a.log != nil {
			a.log.Clear()
		}
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	}

	// Anything else (cursor blinks and the like) goes to whoever has focus.
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		return a, cmd
	}
	v, cmd := a.currentView().Update(msg)
	a.setCurrentView(v)
	return a, cmd
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if top, ok := a.Overlays.Peek(); ok {
		if top.IsDismissKey(msg.String()) {
			a.Overlays.Pop()
			return a, nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd
	}

	view := a.currentView()
	if !capturesInput(view) && a.KeyHandler != nil {
		if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
			return a, cmd
		}
		if msg.String() == "esc" && a.Mode != ModeDashboard {
			return a, a.back()
		}
	}
	v, cmd := view.Update(msg)
	a.setCurrentView(v)
	return a, cmd
}

func (a *appModelAdapter) View() string {
	var b strings.Builder
	b.WriteString(a.header() + "\n\n")
	if top, ok := a.Overlays.Peek(); ok {
		b.WriteString(top.View.View())
	} else {
		b.WriteString(a.currentView().View())
	}
	if panel := a.Messages.View(); panel != "" {
		b.WriteString("\n" + panel)
	}
	if help := RenderKeybindHelp(a.KeyHandler, a.Mode); help != "" {
		b.WriteString("\n" + help)
	}
	return b.String()
}

func (a *appModelAdapter) header() string {
	tabs := []struct {
		mode  AppMode
		label string
	}{{ModeDashboard, "Dashboard"}, {ModeHeroes, "Heroes"}}
	parts := []string{Styles.Title.Render("Tour of Heroes")}
	for _, t := range tabs {
		if a.Mode == t.mode {
			parts = append(parts, Styles.Selected.Render(t.label))
		} else {
			parts = append(parts, Styles.Muted.Render(t.label))
		}
	}
	line := strings.Join(parts, "  ")
	if a.pending > 0 {
		line += "  " + a.spinner.View()
	}
	return line + "  " + Styles.Hint.Render("[SPC] commands")
}

// open switches to r and fetches what the screen shows. Screens always
// refetch on entry.
func (a *AppModel) open(r Route) tea.Cmd {
	a.Overlays.Clear()
	if a.Mode == ModeDashboard && r.Mode != ModeDashboard {
		a.Dashboard.BlurSearch()
	}
	a.Route = r
	a.Mode = r.Mode
	switch r.Mode {
	case ModeDetail:
		a.Detail = NewDetailView(r.ID)
		return tea.Batch(a.Detail.Init(), a.request(loadHeroCmd(a.ctx, a.service, r.ID)))
	default:
		a.Detail = nil
		a.loadSeq++
		return a.request(loadHeroesCmd(a.ctx, a.service, a.loadSeq))
	}
}

// pendingDelete tracks a hero removed locally. Until the delete completes,
// every reload is filtered; after it, only reloads issued up to seq are.
type pendingDelete struct {
	done bool
	seq  int
}

// withoutDeleted drops heroes deleted locally from a reload numbered seq, and
// forgets deletes that this reload already reflects.
func (a *AppModel) withoutDeleted(heroes []hero.Hero, seq int) []hero.Hero {
	if len(a.deleting) == 0 {
		return heroes
	}
	kept := lo.Filter(heroes, func(h hero.Hero, _ int) bool {
		p, ok := a.deleting[h.ID]
		return !ok || (p.done && seq > p.seq)
	})
	for id, p := range a.deleting {
		if p.done && seq > p.seq {
			delete(a.deleting, id)
		}
	}
	return kept
}

// back returns to the previous route, or the dashboard when the history is empty.
func (a *AppModel) back() tea.Cmd {
	r, ok := a.History.Pop()
	if !ok {
		if a.Mode == ModeDashboard {
			return nil
		}
		r = Route{Mode: ModeDashboard}
	}
	return a.open(r)
}

// request counts cmd as in flight and starts the spinner for the first one.
func (a *AppModel) request(cmd tea.Cmd) tea.Cmd {
	a.pending++
	if a.pending == 1 {
		return tea.Batch(cmd, a.spinner.Tick)
	}
	return cmd
}

func (a *AppModel) done() {
	if a.pending > 0 {
		a.pending--
	}
}

func (a *AppModel) syncViews() {
	a.Dashboard.SetTop(a.Roster.Top())
	a.Heroes.SetHeroes(a.Roster.Heroes())
}

func (a *AppModel) addMessage(m string) {
	if a.log != nil {
		a.log.Add(m)
	}
}

func (a *AppModel) currentView() View {
	switch a.Mode {
	case ModeHeroes:
		return a.Heroes
	case ModeDetail:
		if a.Detail != nil {
			return a.Detail
		}
	}
	return a.Dashboard
}

func (a *AppModel) setCurrentView(v View) {
	switch v := v.(type) {
	case *DashboardView:
		a.Dashboard = v
	case *HeroesView:
		a.Heroes = v
	case *DetailView:
		a.Detail = v
	}
}
