package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
)

// viewer tails every *.log file of a directory
type viewer struct {
	dir      string
	rate     time.Duration
	minLevel string
	out      io.Writer
	styles   styles

	mu         sync.Mutex
	filter     string
	lastPrint  time.Time
	gapPrinted bool

	positions map[string]int64
	known     map[string]bool
}

func newViewer(dir string, rate time.Duration, minLevel string, out io.Writer, st styles) *viewer {
	return &viewer{
		dir:       dir,
		rate:      rate,
		minLevel:  minLevel,
		out:       out,
		styles:    st,
		lastPrint: time.Now(),
		positions: make(map[string]int64),
		known:     make(map[string]bool),
	}
}

func (v *viewer) printLine(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, s)
	v.lastPrint = time.Now()
	v.gapPrinted = false
}

func (v *viewer) currentFilter() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// monitor polls the directory until ctx is done
func (v *viewer) monitor(ctx context.Context) {
	ticker := time.NewTicker(v.rate)
	defer ticker.Stop()
	for {
		v.scan()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// scan prints the entries appended to every log file since the last scan
func (v *viewer) scan() {
	logFiles, err := filepath.Glob(filepath.Join(v.dir, "*.log"))
	if err != nil {
		v.printLine(v.styles.err.Render(fmt.Sprintf("Error reading log directory: %v", err)))
		return
	}
	for _, path := range logFiles {
		if !v.known[path] {
			v.printLine(v.styles.notice.Render("New log file detected: " + filepath.Base(path)))
			v.known[path] = true
		}
		if err := v.scanFile(path); err != nil {
			v.printLine(v.styles.err.Render(err.Error()))
		}
	}
}

func (v *viewer) scanFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("error getting file stats for %s: %w", filepath.Base(path), err)
	}
	if stat.Size() < v.positions[path] {
		v.printLine(v.styles.notice.Render(filepath.Base(path) + " has been truncated, starting from beginning"))
		v.positions[path] = 0
	}
	if _, err := file.Seek(v.positions[path], io.SeekStart); err != nil {
		return fmt.Errorf("error seeking in %s: %w", filepath.Base(path), err)
	}

	source := sourceName(path)
	reader := bufio.NewReader(file)
	pos := v.positions[path]
	for {
		line, err := reader.ReadString('\n')
		// A line without its newline is still being written
		if err != nil {
			break
		}
		pos += int64(len(line))

		entry, perr := parseEntry(line)
		if perr != nil {
			v.printLine(v.styles.err.Render(fmt.Sprintf("Error parsing log entry: %v", perr)))
			continue
		}
		formatted := formatLogEntry(v.styles, source, entry)
		if matches(entry, formatted, v.currentFilter(), v.minLevel) {
			v.printLine(formatted)
		}
	}
	v.positions[path] = pos
	return nil
}

// printGaps marks pauses in the stream with a separator
func (v *viewer) printGaps(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		v.mu.Lock()
		if !v.gapPrinted && time.Since(v.lastPrint) > 100*time.Millisecond {
			fmt.Fprintln(v.out, v.styles.gap.Render("◆"))
			v.gapPrinted = true
		}
		v.mu.Unlock()
	}
}

// handleKeys edits the filter until Ctrl-C or Esc
func (v *viewer) handleKeys(done chan<- struct{}) {
	defer close(done)
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			fmt.Fprintln(v.out, "Error reading key:", err)
			return
		}

		switch key {
		case keyboard.KeyCtrlC, keyboard.KeyEsc:
			fmt.Fprintln(v.out, "\nExiting...")
			return
		}

		v.mu.Lock()
		v.filter = editFilter(v.filter, char, key)
		fmt.Fprintf(v.out, "\rCurrent filter: %s", v.filter)
		v.mu.Unlock()
	}
}

// editFilter applies one key press to the filter text
func editFilter(filter string, char rune, key keyboard.Key) string {
	switch key {
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		if filter == "" {
			return filter
		}
		runes := []rune(filter)
		return string(runes[:len(runes)-1])
	case keyboard.KeySpace:
		return filter + " "
	}
	if char != 0 {
		return filter + string(char)
	}
	return filter
}
