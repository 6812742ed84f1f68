package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todostore/internal/action"
	"github.com/idilsaglam/todostore/internal/devtools"
	"github.com/idilsaglam/todostore/internal/state"
	"github.com/idilsaglam/todostore/internal/store"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func newModel(t *testing.T) (Model, *store.Store, *devtools.Monitor) {
	t.Helper()
	mon := devtools.NewMonitor(0)
	s := store.New(state.Reduce, state.Initial(), mon.Middleware())
	m := press(t, New(s, mon), tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, s, mon
}

func TestNew_ShowsSeed(t *testing.T) {
	m, _, _ := newModel(t)
	require.Len(t, m.list.Items(), 3)
	assert.Contains(t, m.list.Title, "Mutations")
	assert.Contains(t, m.View(), "Learn Redux-ToolKit")
}

func TestToggleDispatches(t *testing.T) {
	m, s, _ := newModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, runes(" "))

	st := s.GetState()
	assert.True(t, st.Todos[2].IsComplete)
	assert.Equal(t, 1, st.Counter)

	it, ok := m.list.SelectedItem().(listItem)
	require.True(t, ok)
	assert.True(t, it.todo.IsComplete, "list reflects store state")
}

func TestAddFlow(t *testing.T) {
	m, s, _ := newModel(t)
	m = press(t, m, runes("a"))
	require.True(t, m.adding)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Description cannot be empty", m.inErr)
	assert.Equal(t, 0, s.GetState().Counter)

	m = press(t, m, runes("Buy milk"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.adding)

	st := s.GetState()
	require.Len(t, st.Todos, 4)
	assert.Equal(t, "Buy milk", st.Todos[3].Desc)
	assert.False(t, st.Todos[3].IsComplete)
	assert.Equal(t, 3, m.list.Index(), "cursor follows the new todo")
}

func TestEditFlow(t *testing.T) {
	m, s, _ := newModel(t)
	m = press(t, m, runes("e"))
	require.True(t, m.editing)
	assert.Equal(t, "Learn React", m.ti.Value())

	m = press(t, m, runes("!"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.editing)
	assert.Equal(t, "Learn React!", s.GetState().Todos[0].Desc)
}

func TestEscCancelsInput(t *testing.T) {
	m, s, _ := newModel(t)
	m = press(t, m, runes("a"), runes("nope"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.adding)
	assert.Len(t, s.GetState().Todos, 3)
}

func TestSelectDeleteUndo(t *testing.T) {
	m, s, _ := newModel(t)
	first := s.GetState().Todos[0]

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sel, ok := s.GetState().Selected()
	require.True(t, ok)
	assert.Equal(t, first.ID, sel)
	assert.Equal(t, 0, s.GetState().Counter, "select is not a mutation")

	m = press(t, m, runes("d"))
	st := s.GetState()
	require.Len(t, st.Todos, 2)
	sel, _ = st.Selected()
	assert.Equal(t, first.ID, sel)

	m = press(t, m, runes("u"))
	st = s.GetState()
	require.Len(t, st.Todos, 3)
	assert.Equal(t, first, st.Todos[2])
	assert.Equal(t, 2, st.Counter)
	assert.Nil(t, m.undo)
}

func TestExternalDispatchRefreshesOnChange(t *testing.T) {
	m, s, _ := newModel(t)
	s.Subscribe(m.notify)

	s.Dispatch(action.NewCreate("from elsewhere"))
	assert.Len(t, m.list.Items(), 3, "not refreshed until the change message arrives")

	msg := waitForChange(m.changes)()
	m = press(t, m, msg)
	assert.Len(t, m.list.Items(), 4)
}

func TestTimelinePane(t *testing.T) {
	m, _, _ := newModel(t)
	m = press(t, m, runes(" "), runes("t"))
	require.True(t, m.showTimeline)

	v := m.View()
	assert.Contains(t, v, "Timeline")
	assert.Contains(t, v, "TOGGLE_TODO")
	assert.Contains(t, v, "@@INIT")
}

func TestTimelineNeedsMonitor(t *testing.T) {
	s := store.New(state.Reduce, state.Initial())
	m := press(t, New(s, nil), runes("t"))
	assert.False(t, m.showTimeline)
}

func TestQuit(t *testing.T) {
	m, _, _ := newModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
