package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes")
	Accepted bool
	// Cancelled is true if reading the answer failed
	Cancelled bool
}

// ConfirmDelete asks the user to confirm deleting targets.
//
// The prompt defaults to "No" when the user presses Enter without input or
// closes stdin. Valid inputs: "y" or "yes" in any case for acceptance;
// anything else declines.
func ConfirmDelete(writer io.Writer, reader io.Reader, targets []string) PromptResult {
	switch len(targets) {
	case 0:
		return PromptResult{}
	case 1:
		_, _ = fmt.Fprintf(writer, "? Delete repository %s? [y/N] ", targets[0])
	default:
		_, _ = fmt.Fprintf(writer, "? Delete %d repositories?\n", len(targets))
		for _, t := range targets {
			_, _ = fmt.Fprintf(writer, "    %s\n", t)
		}
		_, _ = fmt.Fprint(writer, "  [y/N] ")
	}

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		// EOF or error - treat as cancelled
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error - treat as decline (user pressed Ctrl+D)
		return PromptResult{}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{}
	}
}
