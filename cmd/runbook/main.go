package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/runbook/internal/compiler"
	"github.com/jorge-barreto/runbook/internal/config"
	"github.com/jorge-barreto/runbook/internal/docs"
	"github.com/jorge-barreto/runbook/internal/logging"
	"github.com/jorge-barreto/runbook/internal/scaffold"
	"github.com/jorge-barreto/runbook/internal/semantic"
	"github.com/jorge-barreto/runbook/internal/ux"
	"github.com/jorge-barreto/runbook/internal/watch"
)

func main() {
	app := &cli.Command{
		Name:        "runbook",
		Usage:       "Compile markdown runbooks into agents, step files, and an orchestrator plan",
		Description: "Run 'runbook docs' for documentation on the runbook format, checks, and config.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to the config file (default: ./" + config.DefaultFile + ")"},
			&cli.StringFlag{Name: "log-level", Usage: "Debug log level: debug, info, warn, error"},
		},
		Commands: []*cli.Command{
			prepareCmd(),
			validateCmd(),
			watchCmd(),
			initCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

// newCompiler loads the config and logger shared by every command.
func newCompiler(cmd *cli.Command) (*compiler.Compiler, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	level := cfg.LogLevel
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	log, err := logging.New(level, os.Stderr)
	if err != nil {
		return nil, err
	}
	return compiler.New(cfg, log), nil
}

func pathArg(cmd *cli.Command) (string, error) {
	path := cmd.Args().First()
	if path == "" {
		return "", fmt.Errorf("path argument is required (a runbook file or a phase directory)")
	}
	return path, nil
}

func prepareCmd() *cli.Command {
	return &cli.Command{
		Name:      "prepare",
		Usage:     "Validate a runbook and generate its execution artifacts",
		ArgsUsage: "<runbook.md | phase-dir>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := pathArg(cmd)
			if err != nil {
				return err
			}
			c, err := newCompiler(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Log.Sync() }()

			if _, err := c.Prepare(path); err != nil {
				if errors.Is(err, compiler.ErrInvalid) {
					return cli.Exit("", 1)
				}
				return err
			}
			return nil
		},
	}
}

func skipFlag(check string) string {
	return "skip-" + check
}

func validateCmd() *cli.Command {
	var sub []*cli.Command
	for _, check := range semantic.Checks {
		flags := []cli.Flag{
			&cli.BoolFlag{Name: skipFlag(check), Usage: "Write a SKIPPED report and exit 0"},
		}
		if check == semantic.LifecycleCheck {
			flags = append(flags, knownFileFlag())
		}
		sub = append(sub, &cli.Command{
			Name:      check,
			Usage:     "Run the " + check + " check",
			ArgsUsage: "<runbook.md | phase-dir>",
			Flags:     flags,
			Action:    validateAction([]string{check}),
		})
	}

	allFlags := []cli.Flag{knownFileFlag()}
	for _, check := range semantic.Checks {
		allFlags = append(allFlags, &cli.BoolFlag{Name: skipFlag(check), Usage: "Skip the " + check + " check"})
	}
	sub = append(sub, &cli.Command{
		Name:      "all",
		Usage:     "Run every check and exit with the worst result",
		ArgsUsage: "<runbook.md | phase-dir>",
		Flags:     allFlags,
		Action:    validateAction(semantic.Checks),
	})

	return &cli.Command{
		Name:        "validate",
		Usage:       "Run semantic checks and write validation reports",
		Description: "Exit status: 0 pass or skipped, 1 fail, 2 ambiguous.",
		Commands:    sub,
	}
}

func knownFileFlag() cli.Flag {
	return &cli.StringSliceFlag{Name: "known-file", Usage: "A file that exists before the runbook runs (repeatable)"}
}

func validateAction(checks []string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		path, err := pathArg(cmd)
		if err != nil {
			return err
		}
		c, err := newCompiler(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = c.Log.Sync() }()

		skip := make(map[string]bool)
		for _, check := range checks {
			skip[check] = cmd.Bool(skipFlag(check))
		}
		outcome, err := c.Validate(path, compiler.CheckRequest{
			Checks:     checks,
			Skip:       skip,
			KnownFiles: cmd.StringSlice("known-file"),
			RunID:      uuid.NewString(),
		})
		if err != nil {
			if errors.Is(err, compiler.ErrInvalid) {
				return cli.Exit("", 1)
			}
			return err
		}
		if code := outcome.ExitCode(); code != 0 {
			return cli.Exit("", code)
		}
		return nil
	}
}

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Re-run prepare whenever the runbook changes",
		ArgsUsage: "<runbook.md | phase-dir>",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "debounce", Value: watch.DefaultDebounce, Usage: "Quiet period before recompiling"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := pathArg(cmd)
			if err != nil {
				return err
			}
			c, err := newCompiler(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Log.Sync() }()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.Watch(ctx, path, cmd.Duration("debounce"))
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Scaffold plans/<name>/runbook.md and " + config.DefaultFile,
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("name argument is required")
			}
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir, name, os.Stdout)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'runbook docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}
