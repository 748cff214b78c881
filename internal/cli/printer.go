package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rshade/contentlist/internal/filter"
	"github.com/rshade/contentlist/internal/tui"
)

// Printer writes status lines, colored when the terminal allows it.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer writing to out and err.
func NewPrinter(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

// newCmdPrinter creates a printer for cmd's streams. Colors are only used
// when writing to the process stdout and follow --no-color, NO_COLOR, TERM
// and whether stdout is a terminal.
func newCmdPrinter(cmd *cobra.Command) *Printer {
	useColors := false
	if f, ok := cmd.OutOrStdout().(*os.File); ok && f == os.Stdout {
		noColor, _ := cmd.Flags().GetBool(flagNoColor)
		useColors = tui.UseColors(noColor)
	}
	return NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), useColors)
}

// Info prints an informational message.
func (p *Printer) Info(format string, args ...any) {
	if p.useColors {
		_, _ = color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
		return
	}
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Success prints a success message.
func (p *Printer) Success(format string, args ...any) {
	if p.useColors {
		_, _ = color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
		return
	}
	_, _ = fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
}

// Warning prints a warning to the error stream.
func (p *Printer) Warning(format string, args ...any) {
	if p.useColors {
		_, _ = color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
		return
	}
	_, _ = fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
}

// Error prints an error to the error stream.
func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		_, _ = color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
		return
	}
	_, _ = fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
}

// Dim returns dimmed text.
func (p *Printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}

// StatusBadge renders a repository status for table output.
func (p *Printer) StatusBadge(status string) string {
	if !p.useColors {
		return status
	}
	switch status {
	case filter.StatusValid:
		return color.GreenString("● ") + status
	case filter.StatusInvalid:
		return color.RedString("● ") + status
	case filter.StatusPending:
		return color.YellowString("● ") + status
	default:
		return color.WhiteString("○ ") + status
	}
}
