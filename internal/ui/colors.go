package ui

import "github.com/charmbracelet/lipgloss"

// Palette used by the shell
const (
	ColorGray        = lipgloss.Color("#969696")
	ColorDarkGray    = lipgloss.Color("#646464")
	ColorWhite       = lipgloss.Color("#ffffff")
	ColorLightRed    = lipgloss.Color("#ff9696")
	ColorRed         = lipgloss.Color("#ff0000")
	ColorLightGreen  = lipgloss.Color("#96ff96")
	ColorGreen       = lipgloss.Color("#00ff00")
	ColorLightYellow = lipgloss.Color("#ffff96")
	ColorYellow      = lipgloss.Color("#ffff00")
	ColorLightBlue   = lipgloss.Color("#9696ff")
	ColorLightPurple = lipgloss.Color("#c896ff")
	ColorLightOrange = lipgloss.Color("#ffc896")
	ColorOrange      = lipgloss.Color("#ffa500")
	ColorPink        = lipgloss.Color("#ffc0cb")
)
