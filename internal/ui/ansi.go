package ui

import (
	"fmt"
	"io"
	"os"
)

// Stdout and Stderr are where every helper in this package writes.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// SetColorMode applies auto, always or never.
func SetColorMode(mode string) error {
	switch mode {
	case "", "auto":
		SetColorForcing(false, false)
	case "always":
		SetColorForcing(true, false)
	case "never":
		SetColorForcing(false, true)
	default:
		return fmt.Errorf("color mode %q: want auto, always or never", mode)
	}
	return nil
}

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func C(color, s string) string {
	if disableColor {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(msg string)   { fmt.Fprintln(Stdout, C(fgGreen, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(Stderr, C(fgRed, symCross+" "+msg)) }

// Hint prints a muted follow-up line under a failure.
func Hint(msg string) { fmt.Fprintln(Stderr, C(fgGray, "Hint: "+msg)) }
