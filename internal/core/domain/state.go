package domain

import "sync"

// ToolchainState records which projects completed during the current invocation.
// Entries are only ever added and the state is never persisted.
type ToolchainState struct {
	mu    sync.RWMutex
	built map[string]struct{}
	order []string
}

// NewToolchainState returns an empty state.
func NewToolchainState() *ToolchainState {
	return &ToolchainState{built: make(map[string]struct{})}
}

// MarkBuilt records that the named project finished its build and install.
func (s *ToolchainState) MarkBuilt(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.built[name]; ok {
		return
	}
	s.built[name] = struct{}{}
	s.order = append(s.order, name)
}

// Built reports whether the named project was built in this run.
func (s *ToolchainState) Built(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.built[name]
	return ok
}

// Names returns the built projects in completion order.
func (s *ToolchainState) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Snapshot returns an immutable copy of the state for predicate evaluation.
func (s *ToolchainState) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(StateSnapshot, len(s.built))
	for name := range s.built {
		snap[name] = struct{}{}
	}
	return snap
}

// StateSnapshot is a point-in-time view of a ToolchainState.
type StateSnapshot map[string]struct{}

// Built reports whether the named project had been built when the snapshot was taken.
func (s StateSnapshot) Built(name string) bool {
	_, ok := s[name]
	return ok
}
