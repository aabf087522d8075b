package decision

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	desk     *Desk
	lastSeen time.Time
}

// Registry tracks the live desks of all sessions.
type Registry struct {
	mu    sync.Mutex
	desks map[uuid.UUID]*entry
	now   func() time.Time
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		desks: make(map[uuid.UUID]*entry),
		now:   time.Now,
	}
}

// Open creates and registers a fresh desk.
func (r *Registry) Open() *Desk {
	d := NewDesk()
	r.mu.Lock()
	r.desks[d.ID()] = &entry{desk: d, lastSeen: r.now()}
	r.mu.Unlock()
	return d
}

// Get returns the desk with id and marks it as seen.
func (r *Registry) Get(id uuid.UUID) (*Desk, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.desks[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.desk, true
}

// Drop forgets the desk with id. An invocation still running on it
// completes against the orphaned desk.
func (r *Registry) Drop(id uuid.UUID) {
	r.mu.Lock()
	delete(r.desks, id)
	r.mu.Unlock()
}

// Sweep drops desks not seen for longer than maxIdle and returns how many
// were dropped. Desks with a request in flight are kept.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for id, e := range r.desks {
		if !e.lastSeen.Before(cutoff) {
			continue
		}
		if e.desk.State().Status() == StatusProcessing {
			continue
		}
		delete(r.desks, id)
		dropped++
	}
	return dropped
}

// Len returns the number of registered desks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.desks)
}

// Counts returns the number of registered desks per status.
func (r *Registry) Counts() map[Status]int {
	r.mu.Lock()
	desks := make([]*Desk, 0, len(r.desks))
	for _, e := range r.desks {
		desks = append(desks, e.desk)
	}
	r.mu.Unlock()

	counts := map[Status]int{
		StatusIdle:       0,
		StatusProcessing: 0,
		StatusDecided:    0,
		StatusError:      0,
	}
	for _, d := range desks {
		counts[d.State().Status()]++
	}
	return counts
}
