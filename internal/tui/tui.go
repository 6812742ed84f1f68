// Package tui is a Bubble Tea front end over a todo store. Every edit is a
// dispatched action; the list is rebuilt from the store's state.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todostore/internal/action"
	"github.com/idilsaglam/todostore/internal/devtools"
	"github.com/idilsaglam/todostore/internal/model"
	"github.com/idilsaglam/todostore/internal/state"
	"github.com/idilsaglam/todostore/internal/store"
)

// listItem adapts a Todo to bubbles/list.Item
type listItem struct {
	todo     model.Todo
	selected bool // the store's selectedTodo
}

func (i listItem) FilterValue() string { return i.todo.Desc }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Desc
	if it.todo.IsComplete {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	pin := " "
	if it.selected {
		pin = accentStyle.Render(pinMark)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s\n", prefix, pin, box, text)
}

// changedMsg tells the model the store has new state.
type changedMsg struct{}

// Model implements tea.Model over a store.
type Model struct {
	store   *store.Store
	monitor *devtools.Monitor // nil when devtools are off
	changes chan struct{}

	list          list.Model
	width, height int

	// Inline add / edit share one text input
	adding  bool
	editing bool
	editID  string
	ti      textinput.Model
	inErr   string

	// Undo re-creates the last deleted todo (single level)
	undo *model.Todo

	showTimeline bool
}

var (
	addBind      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind     = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteBind   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	selectBind   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))
	undoBind     = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	timelineBind = key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timeline"))
)

// New builds a model showing s. mon may be nil.
func New(s *store.Store, mon *devtools.Monitor) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")

	extra := func() []key.Binding {
		bs := []key.Binding{addBind, editBind, toggleBind, deleteBind, selectBind, undoBind}
		if mon != nil {
			bs = append(bs, timelineBind)
		}
		return bs
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m := Model{
		store:   s,
		monitor: mon,
		changes: make(chan struct{}, 1),
		list:    l,
		width:   80,
		height:  24,
	}
	// set up text input for inline add/edit
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.resize()
	m.sync()
	return m
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, s *store.Store, mon *devtools.Monitor) error {
	m := New(s, mon)
	unsubscribe := s.Subscribe(m.notify)
	defer unsubscribe()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// notify is the store listener. It never blocks the dispatching goroutine.
func (m Model) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

// sync rebuilds the list from the store's current state.
func (m *Model) sync() tea.Cmd {
	st := m.store.GetState()
	sel, _ := st.Selected()

	items := make([]list.Item, 0, len(st.Todos))
	for _, td := range st.Todos {
		items = append(items, listItem{todo: td, selected: td.ID == sel})
	}
	cmd := m.list.SetItems(items)
	if n := len(m.list.Items()); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	m.list.Title = header(st)
	return cmd
}

func header(st state.RootState) string {
	dn, pn := st.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), dn,
		pendingStyle.Render("•"), pn,
		accentStyle.Render("Total"), len(st.Todos),
		accentStyle.Render("Mutations"), st.Counter,
	)
}

func (m *Model) resize() {
	listHeight := m.height - 4
	if m.adding || m.editing {
		listHeight -= 3
	}
	listWidth := m.width - 4
	if m.showTimeline {
		listWidth = m.width/2 - 4
	}
	m.list.SetSize(max(listWidth, 10), max(listHeight, 3))
}

// current returns the todo under the cursor.
func (m Model) current() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

// dispatch sends a to the store and refreshes the list.
func (m *Model) dispatch(a action.Action) tea.Cmd {
	m.store.Dispatch(a)
	return m.sync()
}

// Update and View implement Bubble Tea's Model
func (m Model) Init() tea.Cmd { return waitForChange(m.changes) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case changedMsg:
		cmd := m.sync()
		return m, tea.Batch(cmd, waitForChange(m.changes))
	}

	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	km, isKey := msg.(tea.KeyMsg)
	if !isKey || m.list.SettingFilter() {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch km.String() {
	case "q", "esc":
		if m.list.IsFiltered() && km.String() == "esc" {
			break
		}
		return m, tea.Quit
	case " ":
		if td, ok := m.current(); ok {
			cmd := m.dispatch(action.NewToggle(td.ID, !td.IsComplete))
			return m, cmd
		}
		return m, nil
	case "enter":
		if td, ok := m.current(); ok {
			cmd := m.dispatch(action.NewSelect(td.ID))
			return m, cmd
		}
		return m, nil
	case "d":
		if td, ok := m.current(); ok {
			m.undo = &td
			cmd := m.dispatch(action.NewDelete(td.ID))
			return m, cmd
		}
		return m, nil
	case "u":
		if m.undo != nil {
			td := *m.undo
			m.undo = nil
			cmd := m.dispatch(action.Create{Todo: td})
			m.list.Select(len(m.list.Items()) - 1)
			return m, cmd
		}
		return m, nil
	case "a":
		m.adding = true
		m.inErr = ""
		m.ti.SetValue("")
		m.ti.Placeholder = "New todo..."
		m.resize()
		cmd := m.ti.Focus()
		return m, cmd
	case "e":
		if td, ok := m.current(); ok {
			m.editing = true
			m.editID = td.ID
			m.inErr = ""
			m.ti.SetValue(td.Desc)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Edit todo..."
			m.resize()
			cmd := m.ti.Focus()
			return m, cmd
		}
		return m, nil
	case "t":
		if m.monitor != nil {
			m.showTimeline = !m.showTimeline
			m.resize()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			desc := strings.TrimSpace(m.ti.Value())
			if desc == "" {
				m.inErr = "Description cannot be empty"
				return m, nil
			}
			var cmd tea.Cmd
			if m.adding {
				cmd = m.dispatch(action.NewCreate(desc))
				m.list.Select(len(m.list.Items()) - 1)
			} else {
				cmd = m.dispatch(action.NewEdit(m.editID, desc))
			}
			m.closeInput()
			return m, cmd
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.adding, m.editing = false, false
	m.editID = ""
	m.inErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding || m.editing {
		title := "Add todo"
		if m.editing {
			title = "Edit todo"
		}
		if m.inErr != "" {
			title += "  " + errorStyle.Render(m.inErr)
		}
		content = content + "\n" + frameStyle.Render(title+"\n"+m.ti.View())
	}
	if m.showTimeline && m.monitor != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, " ", m.timelineView())
	}
	return frameStyle.Render(content)
}

// timelineView lists the most recent recorded dispatches, newest last.
func (m Model) timelineView() string {
	entries := m.monitor.Entries()
	rows := max(m.height-8, 1)
	if len(entries) > rows {
		entries = entries[len(entries)-rows:]
	}

	lines := []string{titleStyle.Render("Timeline")}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s %-12s %s",
			mutedStyle.Render(fmt.Sprintf("#%03d", e.Seq)),
			string(e.Action.Kind()),
			mutedStyle.Render(fmt.Sprintf("n=%d c=%d", len(e.State.Todos), e.State.Counter)),
		))
	}
	if len(entries) == 0 {
		lines = append(lines, mutedStyle.Render("(empty)"))
	}
	return frameStyle.Width(max(m.width/2-4, 20)).Render(strings.Join(lines, "\n"))
}
