package listview

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderRow(item string, selected bool) string {
	if selected {
		return "> " + item
	}
	return "  " + item
}

func rows(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("row-%02d", i)
	}
	return out
}

func TestVirtualListModel_Empty(t *testing.T) {
	m := NewVirtualListModel[string](nil, 5, 80, renderRow)

	assert.Empty(t, m.View())
	assert.Nil(t, m.GetSelectedItem())
	assert.Equal(t, 0, m.ItemCount())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.Selected())
}

func TestVirtualListModel_Navigation(t *testing.T) {
	m := NewVirtualListModel(rows(20), 5, 80, renderRow)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want int
	}{
		{name: "down", msg: tea.KeyMsg{Type: tea.KeyDown}, want: 1},
		{name: "j", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, want: 2},
		{name: "k", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, want: 1},
		{name: "page down", msg: tea.KeyMsg{Type: tea.KeyPgDown}, want: 6},
		{name: "end", msg: tea.KeyMsg{Type: tea.KeyEnd}, want: 19},
		{name: "down at end", msg: tea.KeyMsg{Type: tea.KeyDown}, want: 19},
		{name: "page up", msg: tea.KeyMsg{Type: tea.KeyPgUp}, want: 14},
		{name: "home", msg: tea.KeyMsg{Type: tea.KeyHome}, want: 0},
		{name: "up at start", msg: tea.KeyMsg{Type: tea.KeyUp}, want: 0},
		{name: "G", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}, want: 19},
		{name: "g", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}}, want: 0},
	}

	for _, tt := range tests {
		m.Update(tt.msg)
		assert.Equal(t, tt.want, m.Selected(), tt.name)
		assert.GreaterOrEqual(t, m.Selected(), m.VisibleFrom(), tt.name)
		assert.Less(t, m.Selected(), m.VisibleTo(), tt.name)
	}
}

func TestVirtualListModel_ViewRendersWindow(t *testing.T) {
	m := NewVirtualListModel(rows(100), 4, 80, renderRow)
	m.SetSelected(50)

	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, 4+2*defaultBufferSize)
	assert.Contains(t, m.View(), "> row-50")
	assert.NotContains(t, m.View(), "row-00")
}

func TestVirtualListModel_SetItemsClampsSelection(t *testing.T) {
	m := NewVirtualListModel(rows(20), 5, 80, renderRow)
	m.SetSelected(15)

	m.SetItems(rows(3))
	assert.Equal(t, 2, m.Selected())
	require.NotNil(t, m.GetSelectedItem())
	assert.Equal(t, "row-02", *m.GetSelectedItem())

	m.SetItems(nil)
	assert.Equal(t, 0, m.Selected())
	assert.Nil(t, m.GetSelectedItem())
}

func TestVirtualListModel_Resize(t *testing.T) {
	m := NewVirtualListModel(rows(20), 5, 80, renderRow)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 10})

	assert.Equal(t, 100, m.Width())
	assert.Equal(t, 10, m.Height())
	assert.Equal(t, 0, m.VisibleFrom())
	assert.Equal(t, 10, m.VisibleTo())
}
