// Package store wires the root reducer into a caller-owned container with
// subscribers and a middleware chain around dispatch.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/idilsaglam/todostore/internal/action"
	"github.com/idilsaglam/todostore/internal/state"
)

// Dispatcher feeds one action into the pipeline.
type Dispatcher func(action.Action)

// API is what middleware and thunks can reach.
type API interface {
	GetState() state.RootState
	Dispatch(action.Action)
	Observe(Hook)
}

// Commit is one reduction as the store applied it. Prev and Next are the
// store's own values and must not be modified.
type Commit struct {
	Action action.Action
	Prev   state.RootState
	Next   state.RootState
	Took   time.Duration
}

// Hook runs inside the reduce step, under the store's lock, once per
// committed action and in commit order. It must not call back into the store.
type Hook func(Commit)

// Middleware wraps dispatch. The first middleware passed to New sees every
// action first.
type Middleware func(api API) func(next Dispatcher) Dispatcher

// Store holds the current root state.
type Store struct {
	reducer state.Reducer

	mu        sync.Mutex
	current   state.RootState
	listeners map[int]func()
	nextID    int
	hooks     []Hook

	dispatch Dispatcher
}

// New builds a store, applies the middleware and dispatches action.Init
// through the full chain.
func New(reducer state.Reducer, initial state.RootState, mws ...Middleware) *Store {
	s := &Store{
		reducer:   reducer,
		current:   initial,
		listeners: make(map[int]func()),
	}

	s.dispatch = func(action.Action) {
		panic("store: dispatching while constructing middleware is not allowed")
	}
	chain := s.commit
	for i := len(mws) - 1; i >= 0; i-- {
		chain = mws[i](s)(chain)
	}
	s.dispatch = chain

	s.Dispatch(action.Init{})
	return s
}

// Dispatch runs a through the middleware chain and the reducer, then
// notifies subscribers.
func (s *Store) Dispatch(a action.Action) {
	s.dispatch(a)
}

// GetState returns a copy of the current state.
func (s *Store) GetState() state.RootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Subscribe registers fn to run after every dispatch. The returned func
// removes it and may be called more than once.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Observe registers h for every later commit. Middleware usually calls it
// while it is being constructed so it also sees action.Init.
func (s *Store) Observe(h Hook) {
	s.mu.Lock()
	s.hooks = append(s.hooks, h)
	s.mu.Unlock()
}

// commit is the innermost dispatcher. Listeners are snapshotted under the
// lock and run outside it so they may dispatch themselves.
func (s *Store) commit(a action.Action) {
	s.mu.Lock()
	prev := s.current
	start := time.Now()
	s.current = s.reducer(prev, a)
	if len(s.hooks) > 0 {
		c := Commit{Action: a, Prev: prev, Next: s.current, Took: time.Since(start)}
		for _, h := range s.hooks {
			h(c)
		}
	}
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
