package cli

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/todostore/internal/model"
	"github.com/idilsaglam/todostore/internal/state"
	"github.com/idilsaglam/todostore/internal/ui"
)

// -------------- rendering helpers --------------

func showState(caption string, s state.RootState, opt Options) {
	ui.Panel(stateLines(caption, s, opt.Group))
}

func stateLines(caption string, s state.RootState, group bool) []string {
	t := ui.Current()
	d, p := s.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		ui.C(t.Title, caption),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymUnchecked), p,
		ui.C(t.Accent, "Total"), len(s.Todos),
		ui.C(t.Accent, "Mutations"), s.Counter,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	sel, hasSel := s.Selected()
	if group {
		lines = append(lines, groupLines(s.Todos, sel)...)
	} else {
		lines = append(lines, flatLines(s.Todos, sel)...)
	}

	lines = append(lines, "")
	switch _, found := s.Find(sel); {
	case !hasSel:
		lines = append(lines, ui.C(t.Muted, "Selected: none"))
	case found:
		lines = append(lines, ui.C(t.Muted, "Selected: "+shortID(sel)))
	default:
		lines = append(lines, ui.C(t.Muted, "Selected: "+shortID(sel)+" (deleted)"))
	}
	return lines
}

func flatLines(todos []model.Todo, selected string) []string {
	t := ui.Current()
	if len(todos) == 0 {
		return []string{ui.C(t.Muted, "no todos")}
	}
	out := make([]string, 0, len(todos))
	for i, td := range todos {
		mark := " "
		if selected != "" && td.ID == selected {
			mark = ui.C(t.Accent, t.SymSelected)
		}
		idx := fmt.Sprintf("%2d.", i+1)
		box := t.BoxUnchecked
		color := t.Muted
		if td.IsComplete {
			box, color = t.BoxChecked, t.Success
		}
		desc := ansi.Truncate(td.Desc, 80, "...")
		out = append(out, fmt.Sprintf("%s %s %s %s %s",
			mark, ui.C("\033[2m", idx), ui.C(color, box), desc, ui.C(t.Muted, shortID(td.ID))))
	}
	return out
}

func groupLines(todos []model.Todo, selected string) []string {
	t := ui.Current()
	var pend, done []model.Todo
	for _, td := range todos {
		if td.IsComplete {
			done = append(done, td)
		} else {
			pend = append(pend, td)
		}
	}
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend, selected)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done, selected)...)
	}
	return lines
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
