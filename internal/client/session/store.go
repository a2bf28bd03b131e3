package session

import "sync"

// Store is the single authoritative State for a client process. Dispatches
// are applied atomically; concurrent requests settle in arrival order and
// the last one wins.
type Store struct {
	mu     sync.RWMutex
	state  State
	nextID int
	subs   map[int]func(State)
}

func NewStore() *Store {
	return &Store{
		state: Initial(),
		subs:  make(map[int]func(State)),
	}
}

// NewStoreFrom starts a store in a rehydrated state.
func NewStoreFrom(s State) *Store {
	st := NewStore()
	st.state = s
	return st
}

// State returns a snapshot.
func (st *Store) State() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}

// Dispatch applies e and notifies subscribers with the resulting state.
func (st *Store) Dispatch(e Event) State {
	st.mu.Lock()
	st.state = Reduce(st.state, e)
	next := st.state
	subs := st.snapshotSubs()
	st.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers fn for every future state change. The returned func
// removes it.
func (st *Store) Subscribe(fn func(State)) func() {
	st.mu.Lock()
	defer st.mu.Unlock()

	id := st.nextID
	st.nextID++
	st.subs[id] = fn

	return func() {
		st.mu.Lock()
		delete(st.subs, id)
		st.mu.Unlock()
	}
}

// Reset returns the store to Initial without notifying subscribers.
func (st *Store) Reset() {
	st.mu.Lock()
	st.state = Initial()
	st.mu.Unlock()
}

func (st *Store) snapshotSubs() []func(State) {
	subs := make([]func(State), 0, len(st.subs))
	for i := 0; i < st.nextID; i++ {
		if fn, ok := st.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}
