// Package main is the entry point for the Yoga Day application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"yogaday/local-app/internal/adapter"
	yogacli "yogaday/local-app/internal/cli"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/ui"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "yogaday",
		Usage: "Keep a library of asanas and arrange them into flows",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "./data/config.json", Usage: "configuration file"},
			&cli.StringFlag{Name: "log-level", Usage: "override the configured log level"},
		},
		Action: shellAction,
		Commands: []*cli.Command{
			{
				Name:      "shell",
				Usage:     "Start the interactive shell, after running the given scripts",
				ArgsUsage: "[script...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "no-color", Usage: "disable colors"},
				},
				Action: shellAction,
			},
			{
				Name:  "serve",
				Usage: "Serve the library over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address, defaults to http_addr from the configuration"},
				},
				Action: serveAction,
			},
			{
				Name:      "export",
				Usage:     "Write the library to a file",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json or yaml"},
				},
				Action: libraryAction("export"),
			},
			{
				Name:      "import",
				Usage:     "Replace the library with the contents of a file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json or yaml"},
				},
				Action: libraryAction("import"),
			},
		},
	}
}

func appFromContext(c *cli.Context) (*application, error) {
	return bootstrap(c.String("config"), c.String("log-level"))
}

// shellAction runs the scripts given as arguments, then the interactive prompt
func shellAction(c *cli.Context) error {
	app, err := appFromContext(c)
	if err != nil {
		return err
	}
	defer app.close()
	ctx := context.Background()

	cliAdapter, err := app.cliAdapter()
	if err != nil {
		return err
	}

	useColor := ui.IsTerminal(os.Stdout) && !c.Bool("no-color")
	shell, err := yogacli.NewCLI(cliAdapter, os.Stdout, useColor, yogacli.NewConfirmer(), app.logger)
	if err != nil {
		app.logger.Error(ctx, "Failed to initialize CLI", log.Fields{"error": err})
		return err
	}
	app.logger.Info(ctx, "CLI instance created", log.Fields{"sessionID": shell.SessionID()})

	for _, script := range c.Args().Slice() {
		exited, err := shell.ExecuteScript(script)
		if err != nil {
			app.logger.Error(ctx, "Script failed", log.Fields{"script": script, "error": err})
			fmt.Printf("Error executing script %s: %v\n", script, err)
			continue
		}
		if exited {
			return nil
		}
	}

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			app.logger.Info(ctx, "Received terminate signal. Shutting down...", nil)
			shell.Stop()
		}
	}()

	if err := shell.Run(app.cfg.HistoryFile); err != nil {
		app.logger.Error(ctx, "CLI error", log.Fields{"error": err})
		return fmt.Errorf("CLI error: %w", err)
	}
	return nil
}

// serveAction runs the HTTP adapter until interrupted
func serveAction(c *cli.Context) error {
	app, err := appFromContext(c)
	if err != nil {
		return err
	}
	defer app.close()
	ctx := context.Background()

	addr := c.String("addr")
	if addr == "" {
		addr = app.cfg.HTTPAddr
	}
	httpAdapter, err := adapter.NewHTTPAdapter(app.adapterManager, addr, app.logger)
	if err != nil {
		return err
	}
	if err := app.adapterManager.AdapterAdd(httpAdapter); err != nil {
		return err
	}
	if err := httpAdapter.AdapterStart(); err != nil {
		app.logger.Error(ctx, "Failed to start HTTP adapter", log.Fields{"error": err})
		return err
	}
	fmt.Printf("Serving on http://%s (Ctrl-C to stop)\n", httpAdapter.Addr())

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	app.logger.Info(ctx, "Received interrupt signal. Shutting down...", nil)
	fmt.Println("\nShutting down...")
	return nil
}

// libraryAction runs a library export or import once and prints the outcome
func libraryAction(op string) cli.ActionFunc {
	return func(c *cli.Context) error {
		if op == "import" && c.NArg() != 1 {
			return cli.Exit("usage: yogaday import [--format json|yaml] <file>", 2)
		}

		app, err := appFromContext(c)
		if err != nil {
			return err
		}
		defer app.close()

		cliAdapter, err := app.cliAdapter()
		if err != nil {
			return err
		}
		sessionID, err := cliAdapter.SessionAdd(nil)
		if err != nil {
			return err
		}
		defer cliAdapter.SessionDelete(sessionID)

		args := c.Args().Slice()
		if format := c.String("format"); format != "" {
			if len(args) == 0 {
				args = append(args, app.cfg.ExportFile)
			}
			args = append(args, format)
		}

		result, err := cliAdapter.CommandRun(sessionID, model.Command{Scope: "library", Operation: op, Args: args})
		if err != nil {
			return err
		}
		fmt.Println(result)
		return nil
	}
}
