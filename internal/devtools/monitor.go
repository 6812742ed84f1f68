// Package devtools records the actions a store dispatches together with
// the state each one produced, for inspection from the TUI or as a JSON dump.
package devtools

import (
	"sync"
	"time"

	"github.com/idilsaglam/todostore/internal/action"
	"github.com/idilsaglam/todostore/internal/state"
	"github.com/idilsaglam/todostore/internal/store"
)

// DefaultMaxAge matches the browser extension's default history length.
const DefaultMaxAge = 50

// Entry is one recorded dispatch.
type Entry struct {
	Seq    int             `json:"seq"`
	At     time.Time       `json:"at"`
	Action action.Action   `json:"action"`
	State  state.RootState `json:"state"`
}

// Monitor keeps the last MaxAge entries, oldest first.
type Monitor struct {
	maxAge int
	now    func() time.Time

	mu      sync.Mutex
	seq     int
	entries []Entry
}

func NewMonitor(maxAge int) *Monitor {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Monitor{maxAge: maxAge, now: time.Now}
}

// Middleware records every commit from inside the store's reduce step, so
// each entry holds the state its own action produced, in commit order, even
// when a listener dispatches from within another dispatch.
func (m *Monitor) Middleware() store.Middleware {
	return func(api store.API) func(next store.Dispatcher) store.Dispatcher {
		api.Observe(func(c store.Commit) { m.record(c.Action, c.Next.Clone()) })
		return func(next store.Dispatcher) store.Dispatcher { return next }
	}
}

func (m *Monitor) record(a action.Action, s state.RootState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.entries = append(m.entries, Entry{Seq: m.seq, At: m.now(), Action: a, State: s})
	if over := len(m.entries) - m.maxAge; over > 0 {
		m.entries = append(m.entries[:0:0], m.entries[over:]...)
	}
}

// Entries returns a copy of the history.
func (m *Monitor) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Monitor) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Last returns the most recent entry.
func (m *Monitor) Last() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) == 0 {
		return Entry{}, false
	}
	return m.entries[len(m.entries)-1], true
}

// Reset drops the history. Sequence numbers keep counting.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}
