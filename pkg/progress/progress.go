// Package progress implements a text progress indicator interface with
// set_target/update/clear, a no-op
// implementation for tests, and a real terminal implementation that
// only animates when stderr is an interactive TTY.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Thermometer tracks progress toward a target count, rendering a
// carriage-return-updated bar when attached to a terminal.
type Thermometer interface {
	SetTarget(n int)
	Update(n int)
	Clear()
}

// noop discards every call; sufficient for tests and non-interactive
// pipelines.
type noop struct{}

// NewNoop returns a Thermometer that does nothing.
func NewNoop() Thermometer { return noop{} }

func (noop) SetTarget(int) {}
func (noop) Update(int) {}
func (noop) Clear() {}

// terminal renders a colored bar to an isatty-detected, ANSI-capable
// writer, built on the mattn/go-isatty + mattn/go-colorable pairing for
// TTY-aware terminal output.
type terminal struct {
	w io.Writer
	target int
	label string
}

// NewTerminal returns a Thermometer that writes an updating bar to w
// (typically os.Stderr wrapped through colorable.NewColorable) labeled
// label.
func NewTerminal(w io.Writer, label string) Thermometer {
	return &terminal{w: w, label: label}
}

// Auto picks NewTerminal when stderr is an interactive ANSI terminal,
// NewNoop otherwise — the same detection shape isatty/colorable exist to
// support.
func Auto(label string) Thermometer {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return NewTerminal(colorable.NewColorable(os.Stderr), label)
	}
	return NewNoop()
}

func (t *terminal) SetTarget(n int) { t.target = n }

func (t *terminal) Update(n int) {
	if t.target <= 0 {
		return
	}
	pct := 100 * n / t.target
	if pct > 100 {
		pct = 100
	}
	const width = 30
	filled := width * pct / 100
	bar := make([]byte, width)
	for i := range bar {
		if i < filled {
			bar[i] = '='
		} else {
			bar[i] = '-'
		}
	}
	fmt.Fprintf(t.w, "\r\x1b[32m%s\x1b[0m [%s] %3d%% (%d/%d)", t.label, bar, pct, n, t.target)
}

func (t *terminal) Clear() {
	fmt.Fprint(t.w, "\r\x1b[K")
}
