package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/idilsaglam/todostore/internal/action"
	"github.com/idilsaglam/todostore/internal/devtools"
	"github.com/idilsaglam/todostore/internal/state"
	"github.com/idilsaglam/todostore/internal/store"
	"github.com/idilsaglam/todostore/internal/tui"
	"github.com/idilsaglam/todostore/internal/ui"
)

// Options tune output behavior from root flags and config.
type Options struct {
	Group bool // list grouped by pending/done

	Logger *slog.Logger

	DevTools       bool   // record dispatches
	DevToolsMaxAge int    // history length, 0 means the default
	DevToolsExport string // session dump path, written after the command

	Stdin io.Reader // replay source for "-"
}

// Interactive reports whether cmd takes over the terminal.
func Interactive(cmd string) bool {
	return cmd == "tui" || cmd == "ls"
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "tui", "ls":
		return withStore(opt, func(s *store.Store, mon *devtools.Monitor) int {
			if err := tui.Run(ctx, s, mon); err != nil {
				ui.Fail("tui: " + err.Error())
				return 1
			}
			return 0
		})

	case "demo":
		return withStore(opt, func(s *store.Store, _ *devtools.Monitor) int {
			return doDemo(s, opt)
		})

	case "replay":
		if len(a) != 1 {
			ui.Fail("usage: todo replay <file|->")
			return 2
		}
		return withStore(opt, func(s *store.Store, _ *devtools.Monitor) int {
			return doReplay(ctx, s, a[0], opt)
		})

	case "emit":
		return doEmit(a)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprintf(ui.Stdout, `todo - a todo store you can drive from the terminal

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  tui | ls                 Interactive list bound to a fresh store
  demo                     Walk through create, toggle, select and delete
  replay <file|->          Dispatch JSON actions, one per line, then show the state
  emit <kind> [args...]    Print one action as JSON
      create <desc...>
      edit <id> <desc...>
      toggle <id> <true|false>
      delete <id>
      select <id>

Examples:
  todo emit create "Buy milk" >> script.jsonl
  todo replay script.jsonl
  todo -group demo
`)
}

// withStore builds a store with the configured middleware, runs fn and
// writes the devtools session if one was requested.
func withStore(opt Options, fn func(*store.Store, *devtools.Monitor) int) int {
	var mws []store.Middleware
	if opt.Logger != nil {
		mws = append(mws, store.Logger(opt.Logger))
	}
	var mon *devtools.Monitor
	if opt.DevTools {
		mon = devtools.NewMonitor(opt.DevToolsMaxAge)
		mws = append(mws, mon.Middleware())
	}

	s := store.New(state.Reduce, state.Initial(), mws...)
	code := fn(s, mon)

	if mon != nil && opt.DevToolsExport != "" {
		if err := mon.SaveFile(opt.DevToolsExport); err != nil {
			ui.Fail("devtools: " + err.Error())
			return 1
		}
	}
	return code
}

// -------------- subcommand impls ----------------

func doDemo(s *store.Store, opt Options) int {
	showState("Initial state", s.GetState(), opt)

	create := action.NewCreate("Buy milk")
	id := create.Todo.ID
	steps := []struct {
		caption string
		act     action.Action
	}{
		{`Create "Buy milk"`, create},
		{"Toggle it complete", action.NewToggle(id, true)},
		{"Select it", action.NewSelect(id)},
		{"Delete it (selection is kept)", action.NewDelete(id)},
	}
	for _, st := range steps {
		s.Dispatch(st.act)
		showState(st.caption, s.GetState(), opt)
	}
	return 0
}

func doReplay(ctx context.Context, s *store.Store, src string, opt Options) int {
	var r io.Reader
	if src == "-" {
		r = opt.Stdin
		if r == nil {
			r = os.Stdin
		}
	} else {
		f, err := os.Open(src)
		if err != nil {
			ui.Fail("replay: " + err.Error())
			ui.Hint("build a script with: todo emit create \"Buy milk\" >> script.jsonl")
			return 1
		}
		defer f.Close()
		r = f
	}

	n := 0
	unsubscribe := s.Subscribe(func() { n++ })
	err := s.Run(ctx, store.Replay(r))
	unsubscribe()
	if err != nil {
		ui.Fail(fmt.Sprintf("replay: %v (after %d actions)", err, n))
		if errors.Is(err, action.ErrUnknownType) {
			ui.Hint("known types: CREATE_TODO, EDIT_TODO, TOGGLE_TODO, DELETE_TODO, SELECT_TODO")
		}
		return 1
	}

	showState("Replayed", s.GetState(), opt)
	ui.OK(fmt.Sprintf("replayed %d actions", n))
	return 0
}

func doEmit(a []string) int {
	if len(a) == 0 {
		ui.Fail("usage: todo emit <create|edit|toggle|delete|select> [args...]")
		return 2
	}
	kind, rest := a[0], a[1:]

	var act action.Action
	switch kind {
	case "create":
		act = action.NewCreate(strings.Join(rest, " "))
	case "edit":
		if len(rest) < 1 {
			ui.Fail("usage: todo emit edit <id> <desc...>")
			return 2
		}
		act = action.NewEdit(rest[0], strings.Join(rest[1:], " "))
	case "toggle":
		if len(rest) != 2 {
			ui.Fail("usage: todo emit toggle <id> <true|false>")
			return 2
		}
		done, err := strconv.ParseBool(rest[1])
		if err != nil {
			ui.Fail("toggle: not a boolean: " + rest[1])
			return 2
		}
		act = action.NewToggle(rest[0], done)
	case "delete", "select":
		if len(rest) != 1 {
			ui.Fail(fmt.Sprintf("usage: todo emit %s <id>", kind))
			return 2
		}
		if kind == "delete" {
			act = action.NewDelete(rest[0])
		} else {
			act = action.NewSelect(rest[0])
		}
	default:
		ui.Fail("emit: unknown action kind: " + kind)
		return 2
	}

	b, err := json.Marshal(act)
	if err != nil {
		ui.Fail("emit: " + err.Error())
		return 1
	}
	fmt.Fprintln(ui.Stdout, string(b))
	return 0
}
