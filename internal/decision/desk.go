package decision

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"verdict/internal/validation"
)

// Desk holds one session's query and lifecycle state. The in-flight slot
// is the Processing status itself: while it is set, submissions, edits and
// resets are ignored. Submissions and edits are accepted only from Idle,
// so a Decided or Error desk must be reset first.
type Desk struct {
	id uuid.UUID

	mu    sync.Mutex
	query string
	state State
}

// NewDesk returns an Idle desk with an empty query and a fresh ID.
func NewDesk() *Desk {
	return &Desk{id: uuid.New(), state: Idle()}
}

// ID identifies the desk within a Registry.
func (d *Desk) ID() uuid.UUID { return d.id }

// Snapshot returns a copy of the desk.
func (d *Desk) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{Query: d.query, State: d.state}
}

// State returns the current state.
func (d *Desk) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// SetQuery stores the raw text being composed. Ignored unless Idle.
// The text is copied; callers may pass strings backed by request buffers.
func (d *Desk) SetQuery(text string) {
	text = strings.Clone(text)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Status() != StatusIdle {
		return
	}
	d.query = text
}

// Begin claims the in-flight slot for query and moves the desk to
// Processing. It returns false, leaving the desk untouched, when the query
// is blank or the desk is not Idle.
func (d *Desk) Begin(query string) (Request, bool) {
	if validation.IsBlankQuery(query) {
		return Request{}, false
	}
	query = strings.Clone(query)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Status() != StatusIdle {
		return Request{}, false
	}
	d.query = query
	d.state = Processing()
	return NewRequest(query), true
}

// Complete releases the in-flight slot with the invocation result and
// returns the terminal state it stored.
func (d *Desk) Complete(text string, err error) State {
	st := Resolve(text, err)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = st
	return st
}

// Reset clears the query and returns the desk to Idle. It is a no-op while
// Processing and reports whether the desk was reset.
func (d *Desk) Reset() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.Status() == StatusProcessing {
		return false
	}
	d.query = ""
	d.state = Idle()
	return true
}
