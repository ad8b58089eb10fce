// Command logviewer follows the JSON log files of Yoga Day with a live text filter.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/eiannone/keyboard"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "logviewer",
		Usage:     "Follow the Yoga Day log files",
		ArgsUsage: "[log directory]",
		Description: "Monitors all *.log files in the directory and prints their JSON entries in a compact form.\n" +
			"Type to add to the filter, backspace to remove the last character. Press Ctrl-C to exit.",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rate", Aliases: []string{"r"}, Value: 1, Usage: "refresh rate in seconds"},
			&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Usage: "minimum level: debug, info, warn or error"},
			&cli.BoolFlag{Name: "no-color", Usage: "disable colors"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logDir := "./logs/"
	if c.NArg() > 0 {
		if info, err := os.Stat(c.Args().First()); err == nil && info.IsDir() {
			logDir = c.Args().First()
		} else {
			fmt.Printf("WARNING: '%s' is not a valid directory. Using default './logs/'\n", c.Args().First())
		}
	}
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		return fmt.Errorf("log directory '%s' does not exist, please specify a valid directory", logDir)
	}

	minLevel := strings.ToUpper(c.String("level"))
	if _, ok := levelRank[minLevel]; minLevel != "" && !ok {
		return fmt.Errorf("unknown level %q", c.String("level"))
	}
	rate := c.Int("rate")
	if rate < 1 {
		rate = 1
	}

	fmt.Printf("Monitoring logs in directory: %s\n", logDir)
	fmt.Printf("Refresh rate: %d second(s)\n", rate)

	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := newStyles(lipgloss.NewRenderer(os.Stdout), !c.Bool("no-color"))
	v := newViewer(logDir, time.Duration(rate)*time.Second, minLevel, os.Stdout, st)
	go v.monitor(ctx)
	go v.printGaps(ctx)

	done := make(chan struct{})
	go v.handleKeys(done)

	fmt.Println("Start typing to filter logs. Press Ctrl-C to exit.")
	fmt.Print("Current filter: ")

	select {
	case <-done:
	case <-ctx.Done():
		fmt.Println("\nExiting...")
	}
	return nil
}

func cleanup() {
	keyboard.Close()
	fmt.Print("\033[?25h") // show cursor
}
