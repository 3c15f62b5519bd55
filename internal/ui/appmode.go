package ui

// AppMode is the top-level screen the app is showing.
type AppMode int

const (
	ModeDashboard AppMode = iota
	ModeHeroes
	ModeDetail
)

func (m AppMode) String() string {
	switch m {
	case ModeDashboard:
		return "Dashboard"
	case ModeHeroes:
		return "Heroes"
	case ModeDetail:
		return "Detail"
	default:
		return "Unknown"
	}
}
