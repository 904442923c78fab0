package cmd

import "github.com/charmbracelet/lipgloss"

var (
	ColorCyan  = lipgloss.Color("#00FFFF")
	ColorGray  = lipgloss.Color("#666666")
	ColorWhite = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TimeStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)
