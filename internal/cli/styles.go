package cli

import "github.com/charmbracelet/lipgloss"

// Gruvbox-inspired palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleRaw       = lipgloss.NewStyle().Foreground(colorBlue)
	styleConverted = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn      = lipgloss.NewStyle().Foreground(colorYellow)
	styleDim       = lipgloss.NewStyle().Foreground(colorDim)
	styleBold      = lipgloss.NewStyle().Foreground(colorFg).Bold(true)
	styleHeader    = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)
