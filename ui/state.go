package ui

// State tracks a boolean and reports transitions of it.
//
// Update sets the pending value; Updated consumes the transition. Containers
// use it to recompute their effective style only when an interaction flag
// actually flips.
type State struct {
	current  bool
	previous bool
}

// NewState creates a state with no pending transition.
func NewState(value bool) State {
	return State{current: value, previous: value}
}

// Current returns the most recently set value.
func (s *State) Current() bool {
	return s.current
}

// Update sets the current value without touching the previous snapshot.
func (s *State) Update(value bool) {
	s.current = value
}

// Updated reports whether the value changed since the last call and advances
// the snapshot. A second call without an intervening Update returns false.
func (s *State) Updated() bool {
	if s.previous != s.current {
		s.previous = s.current
		return true
	}
	return false
}
