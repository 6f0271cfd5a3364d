package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner shows an animated status line. A Spinner created for a
// non-terminal is inert, so callers never need to check.
type Spinner struct {
	s       *spinner.Spinner
	symbols ProgressSymbols
	w       io.Writer
}

// NewSpinner returns a spinner writing to w. It only animates when caps.IsTTY.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	sp := &Spinner{symbols: SelectSymbols(caps), w: w}
	if !caps.IsTTY {
		return sp
	}

	s := spinner.New(spinner.CharSets[sp.symbols.SpinnerSet], spinnerInterval, spinner.WithWriter(w))
	if caps.SupportsColor {
		_ = s.Color("cyan")
	}
	sp.s = s
	return sp
}

// Start begins animating with msg after the spinner glyph.
func (sp *Spinner) Start(msg string) {
	if sp.s == nil {
		return
	}
	sp.s.Suffix = " " + msg
	sp.s.Start()
}

// Update replaces the status message.
func (sp *Spinner) Update(msg string) {
	if sp.s == nil {
		return
	}
	sp.s.Lock()
	sp.s.Suffix = " " + msg
	sp.s.Unlock()
}

// Succeed stops the spinner and leaves a checkmark line.
func (sp *Spinner) Succeed(msg string) {
	sp.stop(sp.symbols.Checkmark, msg)
}

// Fail stops the spinner and leaves a failure line.
func (sp *Spinner) Fail(msg string) {
	sp.stop(sp.symbols.Failure, msg)
}

func (sp *Spinner) stop(symbol, msg string) {
	if sp.s == nil {
		return
	}
	sp.s.Stop()
	fmt.Fprintf(sp.w, "%s %s\n", symbol, msg)
}
