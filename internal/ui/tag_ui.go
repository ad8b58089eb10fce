package ui

import (
	"fmt"
	"strings"
)

// TagList displays a tag registry, marking the tags selected in the filter
func (u *UI) TagList(domain string, tags, selected []string) {
	if len(tags) == 0 {
		u.Info(fmt.Sprintf("No %s tags", domain))
		return
	}

	isSelected := make(map[string]bool, len(selected))
	for _, t := range selected {
		isSelected[t] = true
	}

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		if isSelected[t] {
			parts = append(parts, u.style(ColorLightYellow).Render("["+t+"]"))
			continue
		}
		parts = append(parts, t)
	}
	u.Printf("%s %s\n", u.visualizer.Label(domain+" tags:"), strings.Join(parts, " "))
}

// KeyValues displays label/value pairs in the given order
func (u *UI) KeyValues(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		u.Printf("%s %s\n", u.visualizer.Label(fmt.Sprintf("%-*s", width+1, p[0]+":")), p[1])
	}
}
