// Package navigation tracks where the view is pointed: the current location
// plus back and forward history.
package navigation

import "casper/internal/location"

// State holds the current location and both history stacks. Transitions
// are pure; loading is the Navigator's job.
type State struct {
	current location.Location
	back    []location.Location // top is the last element
	forward []location.Location
}

// NewState starts at initial with empty history.
func NewState(initial location.Location) State {
	return State{current: initial}
}

// Current returns the location being displayed.
func (s State) Current() location.Location {
	return s.current
}

// Push records an explicit navigation: the old current goes on back and
// forward is cleared. Navigating to the current location still pushes.
func (s State) Push(loc location.Location) State {
	return State{
		current: loc,
		back:    append(clone(s.back), s.current),
	}
}

// Back pops back into current and pushes the old current onto forward.
func (s State) Back() (State, bool) {
	if len(s.back) == 0 {
		return s, false
	}
	top := len(s.back) - 1
	return State{
		current: s.back[top],
		back:    clone(s.back[:top]),
		forward: append(clone(s.forward), s.current),
	}, true
}

// Forward pops forward into current and pushes the old current onto back.
func (s State) Forward() (State, bool) {
	if len(s.forward) == 0 {
		return s, false
	}
	top := len(s.forward) - 1
	return State{
		current: s.forward[top],
		back:    append(clone(s.back), s.current),
		forward: clone(s.forward[:top]),
	}, true
}

// PeekBack returns the location Back would move to.
func (s State) PeekBack() (location.Location, bool) {
	if len(s.back) == 0 {
		return location.Location{}, false
	}
	return s.back[len(s.back)-1], true
}

// PeekForward returns the location Forward would move to.
func (s State) PeekForward() (location.Location, bool) {
	if len(s.forward) == 0 {
		return location.Location{}, false
	}
	return s.forward[len(s.forward)-1], true
}

// BackStack returns the back history, most recent first.
func (s State) BackStack() []location.Location {
	return topFirst(s.back)
}

// ForwardStack returns the forward history, most recent first.
func (s State) ForwardStack() []location.Location {
	return topFirst(s.forward)
}

func (s State) CanGoBack() bool {
	return len(s.back) > 0
}

func (s State) CanGoForward() bool {
	return len(s.forward) > 0
}

// CanGoUp reports whether current has a parent.
func (s State) CanGoUp() bool {
	_, ok := s.current.Parent()
	return ok
}

func clone(stack []location.Location) []location.Location {
	out := make([]location.Location, len(stack))
	copy(out, stack)
	return out
}

func topFirst(stack []location.Location) []location.Location {
	out := make([]location.Location, len(stack))
	for i, loc := range stack {
		out[len(stack)-1-i] = loc
	}
	return out
}
