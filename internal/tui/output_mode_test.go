package tui

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestUseColors(t *testing.T) {
	tests := []struct {
		name    string
		noColor bool
		tty     bool
		env     map[string]string
		want    bool
	}{
		{name: "terminal", tty: true, want: true},
		{name: "pipe", tty: false, want: false},
		{name: "no color flag", noColor: true, tty: true, want: false},
		{name: "NO_COLOR env", tty: true, env: map[string]string{"NO_COLOR": "1"}, want: false},
		{name: "empty NO_COLOR still counts", tty: true, env: map[string]string{"NO_COLOR": ""}, want: false},
		{name: "dumb terminal", tty: true, env: map[string]string{"TERM": "dumb"}, want: false},
		{name: "xterm", tty: true, env: map[string]string{"TERM": "xterm-256color"}, want: true},
		{name: "CI", tty: true, env: map[string]string{"CI": "true"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, useColors(tt.noColor, tt.tty, envOf(tt.env)))
		})
	}
}

func TestTerminalHelpers(t *testing.T) {
	assert.False(t, IsTerminal(nil))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	w, h := TerminalSize(f)
	assert.Equal(t, defaultWidth, w)
	assert.Equal(t, defaultHeight, h)

	w, h = TerminalSize(nil)
	assert.Equal(t, defaultWidth, w)
	assert.Equal(t, defaultHeight, h)
}
