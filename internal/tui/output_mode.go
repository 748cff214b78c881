package tui

import (
	"os"

	"golang.org/x/term"
)

// UseColors reports whether output to stdout should be colored. The
// noColor flag, NO_COLOR, TERM=dumb, CI and a stdout that is not a terminal
// each turn colors off.
func UseColors(noColor bool) bool {
	return useColors(noColor, IsTerminal(os.Stdout), os.LookupEnv)
}

func useColors(noColor, tty bool, lookupEnv func(string) (string, bool)) bool {
	if noColor || !tty {
		return false
	}
	if _, ok := lookupEnv("NO_COLOR"); ok {
		return false
	}
	if v, _ := lookupEnv("TERM"); v == "dumb" {
		return false
	}
	_, ci := lookupEnv("CI")
	return !ci
}

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// TerminalSize returns the size of f, or the defaults when it is not a terminal.
func TerminalSize(f *os.File) (int, int) {
	if f == nil {
		return defaultWidth, defaultHeight
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}
