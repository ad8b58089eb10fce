package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Visualizer lays out rows of text as bordered tables
type Visualizer struct {
	renderer *lipgloss.Renderer
	useColor bool
}

func NewVisualizer(r *lipgloss.Renderer, useColor bool) *Visualizer {
	return &Visualizer{renderer: r, useColor: useColor}
}

// Table renders headers and rows. Rows whose first cell is in highlight are
// drawn in the accent color.
func (v *Visualizer) Table(headers []string, rows [][]string, highlight map[string]bool) string {
	header := v.renderer.NewStyle().Bold(true).Padding(0, 1)
	cell := v.renderer.NewStyle().Padding(0, 1)
	accent := cell
	border := v.renderer.NewStyle()
	if v.useColor {
		header = header.Foreground(ColorLightPurple)
		accent = accent.Foreground(ColorLightYellow)
		border = border.Foreground(ColorDarkGray)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row >= 0 && row < len(rows) && highlight[rows[row][0]]:
				return accent
			default:
				return cell
			}
		})
	return t.String()
}

// Label renders a bold field name
func (v *Visualizer) Label(s string) string {
	style := v.renderer.NewStyle().Bold(true)
	if v.useColor {
		style = style.Foreground(ColorLightBlue)
	}
	return style.Render(s)
}
