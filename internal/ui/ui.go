// Package ui renders library data and status messages for the interactive shell.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// UI writes styled output to a terminal or any other writer
type UI struct {
	writer     io.Writer
	useColor   bool
	renderer   *lipgloss.Renderer
	visualizer *Visualizer
}

// NewUI creates a UI. Without color every style renders as plain text.
func NewUI(w io.Writer, useColor bool) *UI {
	r := lipgloss.NewRenderer(w)
	return &UI{
		writer:     w,
		useColor:   useColor,
		renderer:   r,
		visualizer: NewVisualizer(r, useColor),
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (u *UI) style(color lipgloss.Color) lipgloss.Style {
	s := u.renderer.NewStyle()
	if u.useColor {
		s = s.Foreground(color)
	}
	return s
}

func (u *UI) Print(message string) {
	fmt.Fprint(u.writer, message)
}

func (u *UI) Printf(format string, args ...interface{}) {
	fmt.Fprintf(u.writer, format, args...)
}

func (u *UI) Println(message string) {
	fmt.Fprintln(u.writer, message)
}

func (u *UI) PrintlnColored(message string, color lipgloss.Color) {
	fmt.Fprintln(u.writer, u.style(color).Render(message))
}

func (u *UI) Error(message string) {
	u.Println(u.style(ColorRed).Render("!") + " " + u.style(ColorLightOrange).Render(message))
}

func (u *UI) Success(message string) {
	u.PrintlnColored(message, ColorLightGreen)
}

func (u *UI) Warning(message string) {
	u.Println(u.style(ColorLightRed).Render("?") + " " + u.style(ColorLightYellow).Render(message))
}

func (u *UI) Info(message string) {
	u.PrintlnColored(message, ColorGray)
}

// PromptString colors a plain prompt such as "yogaday [cards] > "
func (u *UI) PromptString(prompt string) string {
	if !u.useColor {
		return prompt
	}
	return u.style(ColorLightBlue).Render(prompt)
}
