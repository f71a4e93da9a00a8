package selection

import (
	"sync"

	"github.com/google/uuid"

	"github.com/de-tools/booking-atlas/pkg/models/domain"
)

// AddOutcome reports what happened to an Add call. Rejections are ordinary
// outcomes the caller surfaces to the user, not errors.
type AddOutcome int

const (
	Added AddOutcome = iota
	AlreadySelected
	AtCapacity
)

// State is the ordered working set of selected properties for one
// session. Order is insertion order; duplicates and additions past the
// capacity are rejected with a distinct outcome. Safe for concurrent use.
type State struct {
	mu    sync.Mutex
	props []domain.Property
	byID  map[int64]struct{}
}

func NewState() *State {
	return &State{byID: make(map[int64]struct{})}
}

func (s *State) Add(p domain.Property) AddOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[p.ID]; ok {
		return AlreadySelected
	}
	if len(s.props) >= domain.MaxSelectedProperties {
		return AtCapacity
	}
	s.props = append(s.props, p)
	s.byID[p.ID] = struct{}{}
	return Added
}

func (s *State) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, p := range s.props {
		if p.ID == id {
			s.props = append(s.props[:i], s.props[i+1:]...)
			break
		}
	}
	return true
}

func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.props = nil
	s.byID = make(map[int64]struct{})
}

// Properties returns the selection in insertion order.
func (s *State) Properties() []domain.Property {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Property, len(s.props))
	copy(out, s.props)
	return out
}

func (s *State) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.props))
	for _, p := range s.props {
		ids = append(ids, p.ID)
	}
	return ids
}

func (s *State) AtCapacity() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.props) >= domain.MaxSelectedProperties
}

// Registry tracks per-session selection state in memory, keyed by an
// opaque session id handed out at creation.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*State
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*State)}
}

// Create allocates a fresh session and returns its id.
func (r *Registry) Create() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	sid := uuid.NewString()
	r.sessions[sid] = NewState()
	return sid
}

func (r *Registry) Get(sid string) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.sessions[sid]
	return state, ok
}

// Drop discards a session entirely. It reports whether the session
// existed.
func (r *Registry) Drop(sid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[sid]
	delete(r.sessions, sid)
	return ok
}
