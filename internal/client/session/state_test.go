package session

import (
	"math/rand/v2"
	"testing"

	"jobportal-service/internal/domain/user"

	"github.com/stretchr/testify/require"
)

func authenticated(u *user.User) State {
	return State{IsAuthenticated: true, User: u}
}

func TestLoginSuccess(t *testing.T) {
	s := Reduce(Initial(), RequestStarted{})
	require.Equal(t, PhasePending, s.Phase())

	s = Reduce(s, Succeeded{User: &user.User{ID: 1, Name: "A"}, Message: "Login successful"})

	require.Equal(t, State{
		Loading:         false,
		IsAuthenticated: true,
		User:            &user.User{ID: 1, Name: "A"},
		Error:           "",
		Message:         "Login successful",
	}, s)
	require.Equal(t, PhaseAuthenticated, s.Phase())
}

func TestSucceededWithoutUserSettlesAsError(t *testing.T) {
	s := Reduce(Initial(), RequestStarted{})
	s = Reduce(s, Succeeded{Message: "ok"})

	require.Equal(t, State{Error: MissingUserMessage}, s)
	require.Equal(t, PhaseError, s.Phase())

	s = Reduce(authenticated(&user.User{ID: 4}), Succeeded{})
	require.False(t, s.IsAuthenticated)
	require.Nil(t, s.User)
}

func TestLoginFailure(t *testing.T) {
	s := Reduce(Initial(), RequestStarted{})
	s = Reduce(s, Failed{Message: "Invalid credentials"})

	require.Equal(t, State{Error: "Invalid credentials"}, s)
	require.Equal(t, PhaseError, s.Phase())
}

func TestFetchCurrentUserSuccess(t *testing.T) {
	s := Reduce(Initial(), RequestStarted{})
	s = Reduce(s, Succeeded{User: &user.User{ID: 2}, Message: "User fetched successfully"})

	require.True(t, s.IsAuthenticated)
	require.Equal(t, int64(2), s.User.ID)
	require.Equal(t, "User fetched successfully", s.Message)
}

func TestLogoutSuccess(t *testing.T) {
	before := authenticated(&user.User{ID: 1})
	before.Message = "still here"

	s := Reduce(before, LoggedOut{})

	require.False(t, s.IsAuthenticated)
	require.Nil(t, s.User)
	require.Empty(t, s.Error)
	require.Equal(t, before.Loading, s.Loading)
	require.Equal(t, "still here", s.Message)
	require.Equal(t, PhaseIdle, s.Phase())
}

func TestLogoutFailurePreservesSession(t *testing.T) {
	u := &user.User{ID: 1}
	s := Reduce(authenticated(u), LogoutFailed{Message: "Server unreachable"})

	require.True(t, s.IsAuthenticated)
	require.Same(t, u, s.User)
	require.Equal(t, "Server unreachable", s.Error)
}

func TestRequestStartedClearsPreviousCycle(t *testing.T) {
	starts := []State{
		Initial(),
		{Error: "boom"},
		{IsAuthenticated: true, User: &user.User{ID: 3}, Message: "hi"},
		{IsAuthenticated: true, User: &user.User{ID: 3}, Error: "logout failed"},
		{Loading: true},
	}
	for _, start := range starts {
		s := Reduce(start, RequestStarted{})
		require.Equal(t, State{Loading: true}, s)
	}
}

func TestErrorsClearedIdempotent(t *testing.T) {
	start := State{IsAuthenticated: true, User: &user.User{ID: 9}, Error: "x", Message: "y"}

	once := Reduce(start, ErrorsCleared{})
	twice := Reduce(once, ErrorsCleared{})

	require.Equal(t, once, twice)
	require.Empty(t, once.Error)
	require.Empty(t, once.Message)
	require.Equal(t, start.User, once.User)
}

func TestNilEventIsNoop(t *testing.T) {
	s := State{Error: "keep"}
	require.Equal(t, s, Reduce(s, nil))
}

func invariantHolds(s State) bool {
	if s.IsAuthenticated {
		return s.User != nil && s.Error == ""
	}
	return s.User == nil
}

// Random request cycles never reach a state that claims authentication
// without a user, or carries a user while unauthenticated.
func TestInvariantOverRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	events := []func() Event{
		func() Event { return RequestStarted{} },
		func() Event { return Succeeded{User: &user.User{ID: rng.Int64N(100) + 1}, Message: "ok"} },
		func() Event { return Succeeded{Message: "ok"} },
		func() Event { return Failed{Message: "nope"} },
		func() Event { return LoggedOut{} },
		func() Event { return ErrorsCleared{} },
	}

	for run := 0; run < 200; run++ {
		s := Initial()
		for step := 0; step < 50; step++ {
			s = Reduce(s, events[rng.IntN(len(events))]())
			require.True(t, invariantHolds(s), "run %d step %d: %+v", run, step, s)
			if s.Loading {
				require.Empty(t, s.Error)
				require.Empty(t, s.Message)
			}
		}
	}
}

func TestLogoutFailedRecoversAfterClear(t *testing.T) {
	s := Reduce(authenticated(&user.User{ID: 1}), LogoutFailed{Message: "down"})
	s = Reduce(s, ErrorsCleared{})

	require.True(t, invariantHolds(s))
	require.True(t, s.IsAuthenticated)
}
