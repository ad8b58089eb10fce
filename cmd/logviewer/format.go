package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// LogEntry is one decoded JSON log line
type LogEntry map[string]interface{}

type styles struct {
	time   lipgloss.Style
	source lipgloss.Style
	key    lipgloss.Style
	levels map[string]lipgloss.Style
	gap    lipgloss.Style
	err    lipgloss.Style
	notice lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, color bool) styles {
	s := styles{
		time:   r.NewStyle(),
		source: r.NewStyle(),
		key:    r.NewStyle(),
		levels: map[string]lipgloss.Style{},
		gap:    r.NewStyle(),
		err:    r.NewStyle(),
		notice: r.NewStyle(),
	}
	if !color {
		return s
	}
	s.time = s.time.Foreground(lipgloss.Color("5"))
	s.source = s.source.Foreground(lipgloss.Color("8"))
	s.key = s.key.Foreground(lipgloss.Color("6"))
	s.levels = map[string]lipgloss.Style{
		"DEBUG": r.NewStyle().Foreground(lipgloss.Color("4")),
		"INFO":  r.NewStyle().Foreground(lipgloss.Color("2")),
		"WARN":  r.NewStyle().Foreground(lipgloss.Color("3")),
		"ERROR": r.NewStyle().Foreground(lipgloss.Color("1")),
	}
	s.gap = s.gap.Foreground(lipgloss.Color("5"))
	s.err = s.err.Foreground(lipgloss.Color("1"))
	s.notice = s.notice.Foreground(lipgloss.Color("3"))
	return s
}

// levelRank orders levels so that a minimum level can be applied
var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

func formatTimestamp(timestamp string) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Format("06-01-02 15:04:05.000000")
}

// sourceName turns "logs/commands.log" into "commands"
func sourceName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func parseEntry(line string) (LogEntry, error) {
	var entry LogEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// entryLevel returns the upper-case level of the entry
func entryLevel(entry LogEntry) string {
	level, _ := entry["level"].(string)
	return strings.ToUpper(level)
}

// formatLogEntry renders the entry on one header line followed by one line per
// extra field, in key order
func formatLogEntry(st styles, source string, entry LogEntry) string {
	timestamp, _ := entry["time"].(string)
	msg, _ := entry["msg"].(string)
	level := entryLevel(entry)

	levelStyle, ok := st.levels[level]
	if !ok {
		levelStyle = st.source
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s",
		st.time.Render(formatTimestamp(timestamp)),
		levelStyle.Render(fmt.Sprintf("%-5s", level)),
		st.source.Render(fmt.Sprintf("%-8s", source)),
		msg)

	keys := make([]string, 0, len(entry))
	for key := range entry {
		if key != "time" && key != "level" && key != "msg" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, "\n    %s %v", st.key.Render(key+":"), entry[key])
	}
	return b.String()
}

// matches applies the minimum level and the case-insensitive text filter
func matches(entry LogEntry, formatted, filter, minLevel string) bool {
	if minLevel != "" {
		if rank, ok := levelRank[entryLevel(entry)]; ok && rank < levelRank[minLevel] {
			return false
		}
	}
	return filter == "" || strings.Contains(strings.ToLower(formatted), strings.ToLower(filter))
}
