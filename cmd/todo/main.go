package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/todostore/internal/cli"
	"github.com/idilsaglam/todostore/internal/config"
	"github.com/idilsaglam/todostore/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	groupPending := flag.Bool("group", false, "group output by pending/done")
	cfgPath := flag.String("config", "", "config file (default $TODO_CONFIG or ~/.config/todo/config.toml)")
	theme := flag.String("theme", "", "classic, neon or mono")
	color := flag.String("color", "", "auto, always or never")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	devtoolsOut := flag.String("devtools-out", "", "write the recorded dispatch history to this file")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(1)
	}
	override(&cfg.UI.Theme, *theme)
	override(&cfg.UI.Color, *color)
	override(&cfg.Log.Level, *logLevel)
	override(&cfg.DevTools.Export, *devtoolsOut)

	if err := ui.SetColorMode(cfg.UI.Color); err != nil {
		ui.Fail(err.Error())
		os.Exit(2)
	}
	ui.SetTheme(cfg.UI.Theme)

	logger, closeLog, err := openLogger(cfg.Log, cli.Interactive(args[0]))
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, args, cli.Options{
		Group:          *groupPending,
		Logger:         logger,
		DevTools:       cfg.DevTools.Enabled || cfg.DevTools.Export != "",
		DevToolsMaxAge: cfg.DevTools.MaxAge,
		DevToolsExport: cfg.DevTools.Export,
	})
	stop()
	closeLog()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}

func override(dst *string, flagValue string) {
	if flagValue != "" {
		*dst = flagValue
	}
}

// openLogger logs to log.file when set. Otherwise one-shot commands log to
// stderr and the TUI, which owns the terminal, does not log at all.
func openLogger(c config.LogConfig, interactive bool) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case c.File != "":
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	case interactive:
		w = io.Discard
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h), closer, nil
}
