package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownRoute is returned by ParseRoute for paths no screen answers to.
var ErrUnknownRoute = errors.New("unknown route")

// Route is a parsed navigation target. ID is only meaningful for ModeDetail.
type Route struct {
	Mode AppMode
	ID   int
}

// Path renders the route back to its path form.
func (r Route) Path() string {
	switch r.Mode {
	case ModeHeroes:
		return "heroes"
	case ModeDetail:
		return fmt.Sprintf("detail/%d", r.ID)
	default:
		return "dashboard"
	}
}

// ParseRoute maps a path to a Route. The empty path redirects to the dashboard;
// detail ids must be positive integers.
func ParseRoute(path string) (Route, error) {
	p := strings.Trim(strings.TrimSpace(path), "/")
	switch p {
	case "", "dashboard":
		return Route{Mode: ModeDashboard}, nil
	case "heroes":
		return Route{Mode: ModeHeroes}, nil
	}
	rest, ok := strings.CutPrefix(p, "detail/")
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 {
		return Route{}, fmt.Errorf("%w: bad hero id %q", ErrUnknownRoute, rest)
	}
	return Route{Mode: ModeDetail, ID: id}, nil
}

// History is the back stack of visited routes.
type History struct {
	Stack []Route
}

// Push records r as the route to return to.
func (h *History) Push(r Route) {
	h.Stack = append(h.Stack, r)
}

// Pop removes and returns the most recent route.
func (h *History) Pop() (Route, bool) {
	if len(h.Stack) == 0 {
		return Route{}, false
	}
	top := h.Stack[len(h.Stack)-1]
	h.Stack = h.Stack[:len(h.Stack)-1]
	return top, true
}

// Len returns the number of routes on the stack.
func (h *History) Len() int {
	return len(h.Stack)
}
