package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ConfigureColor turns colour off when noColor is set or out is not a terminal
func ConfigureColor(noColor bool, out *os.File) {
	color.NoColor = noColor || !IsTerminal(out)
}
