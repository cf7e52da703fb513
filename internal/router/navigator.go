package router

import "sync"

// Navigator tracks the current location. Every Push goes through the guard.
type Navigator struct {
	mu      sync.Mutex
	guard   *Guard
	current string
	history []string
}

// NewNavigator starts at start without checking it
func NewNavigator(guard *Guard, start string) *Navigator {
	return &Navigator{guard: guard, current: CleanPath(start)}
}

// Push navigates to target, following any redirect the guard decides
func (n *Navigator) Push(target string) Decision {
	d := n.guard.Check(target)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, n.current)
	n.current = d.Target
	return d
}

// Replace moves to path without a guard check or a history entry
func (n *Navigator) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
}

// Back returns to the previous location, if any
func (n *Navigator) Back() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return n.current, false
	}
	n.current = n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	return n.current, true
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}
