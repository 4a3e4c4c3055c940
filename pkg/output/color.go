package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorEnabled reports whether styled output should be written to w.
// Color is off for anything that is not a terminal, when NO_COLOR or
// CLICOLOR=0 is set, and when the terminal has no color support.
func ColorEnabled(w io.Writer) bool {
	if termenv.EnvNoColor() {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}

	return termenv.ColorProfile() != termenv.Ascii
}
