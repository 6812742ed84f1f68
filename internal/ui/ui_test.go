package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := Stdout, Stderr
	Stdout, Stderr = out, errOut
	t.Cleanup(func() { Stdout, Stderr = prevOut, prevErr })
	return out, errOut
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "█████ 100%", ProgressBar(3, 3, 5))
}

func TestPanel_AlignsStyledLines(t *testing.T) {
	out, _ := capture(t)
	SetTheme("classic")
	SetColorForcing(true, false)
	t.Cleanup(func() { SetColorForcing(false, false) })

	Panel([]string{C(Current().Success, "✔ styled"), "plain longer line", "☑ wide?"})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	w := ansi.StringWidth(lines[0])
	for _, ln := range lines {
		assert.Equal(t, w, ansi.StringWidth(ln), "line %q", ln)
	}
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
}

func TestSetColorMode(t *testing.T) {
	t.Cleanup(func() { SetColorForcing(false, false) })

	require.NoError(t, SetColorMode("never"))
	assert.Equal(t, "x", C(fgRed, "x"))

	require.NoError(t, SetColorMode("always"))
	assert.Equal(t, fgRed+"x"+reset, C(fgRed, "x"))

	assert.Error(t, SetColorMode("sometimes"))
}

func TestOKAndFail(t *testing.T) {
	out, errOut := capture(t)
	require.NoError(t, SetColorMode("never"))
	t.Cleanup(func() { SetColorForcing(false, false) })

	OK("added")
	Fail("nope")
	Hint("try again")
	assert.Equal(t, "✔ added\n", out.String())
	assert.Equal(t, "✖ nope\nHint: try again\n", errOut.String())
}

func TestSetTheme_Mono(t *testing.T) {
	t.Cleanup(func() {
		SetTheme("classic")
		SetColorForcing(false, false)
	})
	SetTheme("mono")
	assert.Equal(t, "[x]", Current().BoxChecked)
	assert.Equal(t, "plain", C(fgGreen, "plain"))
}
