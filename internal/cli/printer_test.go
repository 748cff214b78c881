package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/contentlist/internal/cli"
	"github.com/rshade/contentlist/internal/filter"
)

func TestPrinter_Plain(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	p := cli.NewPrinter(&out, &errOut, false)

	p.Info("listing %d", 3)
	p.Success("Deleted %s", "abc")
	p.Warning("slow %s", "api")
	p.Error("%s: %v", "abc", "gone")

	assert.Equal(t, "listing 3\n[OK] Deleted abc\n", out.String())
	assert.Equal(t, "[WARN] slow api\n[ERROR] abc: gone\n", errOut.String())
	assert.Equal(t, "hint", p.Dim("hint"))
	assert.Equal(t, filter.StatusValid, p.StatusBadge(filter.StatusValid))
}

func TestPrinter_Colored(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	p := cli.NewPrinter(&out, &errOut, true)

	p.Success("Deleted %s", "abc")
	p.Error("failed")

	assert.Contains(t, out.String(), "✓ Deleted abc")
	assert.NotContains(t, out.String(), "[OK]")
	assert.Contains(t, errOut.String(), "✗ failed")
	for _, s := range filter.KnownStatuses {
		assert.Contains(t, p.StatusBadge(s), s)
	}
}
