package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorHighlight = lipgloss.Color("212")
	ColorMuted     = lipgloss.Color("241")
	ColorBorder    = lipgloss.Color("238")
	ColorSpinner   = lipgloss.Color("69")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
)

// Status icons.
const (
	IconValid       = "●"
	IconInvalid     = "✗"
	IconPending     = "◌"
	IconUnavailable = "○"
)

// Layout defaults used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 30
	borderPadding = 4
)

//nolint:gochecknoglobals // shared lipgloss styles
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorLabel).Italic(true)

	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	OKStyle       = lipgloss.NewStyle().Foreground(ColorOK)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TableHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	TableSelectedStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	ChipStyle = lipgloss.NewStyle().
			Foreground(ColorValue).
			Background(ColorBorder).
			Padding(0, 1)

	MenuCursorStyle = lipgloss.NewStyle().Foreground(ColorHighlight)
)
