package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	t := Current()
	// visible width ignores escape codes and counts wide runes as two
	maxw := 0
	for _, ln := range lines {
		if w := ansi.StringWidth(ln); w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		if vis := ansi.StringWidth(s); vis < maxw {
			s = s + strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	leftPad := " "
	fmt.Fprintln(Stdout, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(Stdout, t.V+leftPad+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(Stdout, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}
