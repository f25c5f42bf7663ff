package terminal

import (
	"io"
	"os"
	"strings"
)

// restoreSequences undo what the viewer turns on: hidden cursor, colors,
// the alternate screen and mouse reporting.
var restoreSequences = []string{
	"\033[?25h",
	"\033[0m",
	"\033[?1049l",
	"\033[?1000l",
	"\033[?1002l",
	"\033[?1003l",
	"\033[?1006l",
}

// Restore writes the reset sequences to w.
func Restore(w io.Writer) error {
	_, err := io.WriteString(w, strings.Join(restoreSequences, ""))
	return err
}

// Reset restores stdout after an abrupt exit.
func Reset() {
	_ = Restore(os.Stdout)
	_ = os.Stdout.Sync()
}
