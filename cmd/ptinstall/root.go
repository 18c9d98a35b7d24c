package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/portable-tools/ptinstall/internal/config"
	"github.com/portable-tools/ptinstall/internal/extract"
	"github.com/portable-tools/ptinstall/internal/platform"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitPartial = 2
)

// app carries what every command needs once flags are parsed.
type app struct {
	stdout, stderr io.Writer
	detector       platform.Detector

	configPath string
	logLevel   string
	verbose    bool

	cfg *config.Config
	log *zap.SugaredLogger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, detector: platform.NewDetector()}
}

// logger returns the app logger in the form the internal packages accept.
func (a *app) logger() zapLogger {
	return zapLogger{s: a.log}
}

// exitError carries a non-default exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// outcomeError maps an extraction outcome to the command result.
func outcomeError(out extract.Outcome) error {
	switch out.Status {
	case extract.StatusCompleted:
		return nil
	case extract.StatusPartiallyFailed:
		return &exitError{code: exitPartial, err: errors.New(out.Reason)}
	default:
		return &exitError{code: exitFailure, err: out.Err}
	}
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ptinstall",
		Short:         "Install portable tool distributions from local archives",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.Context())
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Lua config file (default: ./"+config.DefaultFileName+" if present)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (default from config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "show full error details")

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	cmd.AddCommand(
		newInstallCommand(a),
		newExtractCommand(a),
		newScanCommand(a),
		newPathCommand(a),
		newInitCommand(a),
		newVersionCommand(a),
	)
	return cmd
}

// load reads configuration and sets up logging. The --log-level flag wins
// over the configured level.
func (a *app) load(ctx context.Context) error {
	bootLevel := a.logLevel
	if bootLevel == "" {
		bootLevel = "warn"
	}
	boot, err := newLogger(bootLevel, a.stderr)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}

	cfg, err := config.Load(ctx, config.LoadOptions{
		Path:     a.configPath,
		Detector: a.detector,
		Logger:   zapLogger{s: boot},
	})
	if err != nil {
		return &exitError{code: exitFailure, err: fmt.Errorf("load config: %s", config.FormatError(err, a.verbose))}
	}

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.log, err = newLogger(level, a.stderr); err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	a.cfg = cfg
	return nil
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, a *app) int {
	cmd := newRootCommand(a)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitFailure
}
