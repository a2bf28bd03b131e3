// Package session holds the client-side view of the authenticated session.
// State only changes through Reduce, which is pure.
package session

import "jobportal-service/internal/domain/user"

// MissingUserMessage is the error a success without a user settles to.
const MissingUserMessage = "Response did not include a user."

type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseAuthenticated
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// State is the session as the client sees it. A nil User is the empty
// user and an empty Error or Message means none is set.
type State struct {
	Loading         bool
	IsAuthenticated bool
	User            *user.User
	Error           string
	Message         string
}

// Initial is the unauthenticated shape the client starts in.
func Initial() State {
	return State{}
}

// Phase derives the coarse lifecycle phase from the fields.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhasePending
	case s.IsAuthenticated:
		return PhaseAuthenticated
	case s.Error != "":
		return PhaseError
	default:
		return PhaseIdle
	}
}

// Event is a transition. The set is closed.
type Event interface {
	apply(State) State
}

// RequestStarted enters pending and drops everything from the previous cycle.
type RequestStarted struct{}

// Succeeded settles a pending request with an authenticated user. Without
// a user it settles like Failed.
type Succeeded struct {
	User    *user.User
	Message string
}

// Failed settles a pending request with an error.
type Failed struct {
	Message string
}

// LoggedOut clears the user. Loading and Message are left as they are.
type LoggedOut struct{}

// LogoutFailed records the error and nothing else.
type LogoutFailed struct {
	Message string
}

// ErrorsCleared drops Error and Message. Applying it twice is the same as once.
type ErrorsCleared struct{}

func (RequestStarted) apply(s State) State {
	return State{Loading: true}
}

func (e Succeeded) apply(s State) State {
	if e.User == nil {
		return State{Error: MissingUserMessage}
	}
	return State{
		IsAuthenticated: true,
		User:            e.User,
		Message:         e.Message,
	}
}

func (e Failed) apply(s State) State {
	return State{Error: e.Message}
}

func (LoggedOut) apply(s State) State {
	s.IsAuthenticated = false
	s.User = nil
	s.Error = ""
	return s
}

func (e LogoutFailed) apply(s State) State {
	s.Error = e.Message
	return s
}

func (ErrorsCleared) apply(s State) State {
	s.Error = ""
	s.Message = ""
	return s
}

// Reduce returns the state after e. A nil event leaves s unchanged.
func Reduce(s State, e Event) State {
	if e == nil {
		return s
	}
	return e.apply(s)
}
