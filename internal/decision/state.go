// Package decision holds the decision desk: the query a user is composing,
// the four-state lifecycle around a single inference call, and the
// prompt that call is made with.
package decision

// Status is the lifecycle stage of a desk.
type Status int

const (
	StatusIdle Status = iota
	StatusProcessing
	StatusDecided
	StatusError
)

// String returns the lowercase name used in views, JSON and metric labels.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusProcessing:
		return "processing"
	case StatusDecided:
		return "decided"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a Status together with the payload that status carries.
// Decided carries the decision text and Error carries the failure message;
// Idle and Processing carry nothing. The zero value is Idle.
type State struct {
	status  Status
	payload string
}

// Idle returns the initial state.
func Idle() State { return State{status: StatusIdle} }

// Processing returns the in-flight state.
func Processing() State { return State{status: StatusProcessing} }

// Decided returns a terminal state carrying the decision text.
func Decided(text string) State { return State{status: StatusDecided, payload: text} }

// Failed returns a terminal state carrying the failure message.
func Failed(message string) State { return State{status: StatusError, payload: message} }

// Status reports the lifecycle stage.
func (s State) Status() Status { return s.status }

// Decision returns the decision text when the state is Decided.
func (s State) Decision() (string, bool) {
	if s.status != StatusDecided {
		return "", false
	}
	return s.payload, true
}

// Failure returns the failure message when the state is Error.
func (s State) Failure() (string, bool) {
	if s.status != StatusError {
		return "", false
	}
	return s.payload, true
}

// Terminal reports whether the state is Decided or Error.
func (s State) Terminal() bool {
	return s.status == StatusDecided || s.status == StatusError
}

// Snapshot is a point-in-time copy of a desk.
type Snapshot struct {
	Query string
	State State
}
