package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/nono/internal/config"
	"github.com/roach88/nono/internal/harness"
	"github.com/roach88/nono/internal/schema"
	"github.com/roach88/nono/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string

	// Sessions overrides the session id generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	Sessions store.SessionGenerator
}

// RunResult is the JSON payload of the run command.
type RunResult struct {
	Name    string   `json:"name"`
	Pass    bool     `json:"pass"`
	Session string   `json:"session"`
	Events  int      `json:"events"`
	Errors  []string `json:"errors,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run one scenario and record its trace",
		Long: `Run a scenario file, recording every dispatched event into a SQLite
trace database. Without --db the store.path setting is used; when that is
empty too the trace is kept in memory and only the summary is printed.

A scenario without a session is recorded under a fresh UUIDv7 session id.

Examples:
  nono run ./scenarios/typing.yaml
  nono run ./scenarios/typing.yaml --db ./nono.db
  nono run ./scenarios/typing.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite trace database")

	return cmd
}

func runScenarioFile(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	cfg := opts.config()
	logger := opts.logger()

	validator, err := schema.New()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compile scenario schema", err)
	}
	scenario, loadErrs := LoadScenarioFile(validator, path)
	if len(loadErrs) > 0 {
		first := loadErrs[0]
		return formatter.Fail(exitForLoad(first), first.Code, first.Error(), loadErrs)
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = cfg.Store.Path
	}

	sessions := opts.Sessions
	if sessions == nil {
		sessions = store.UUIDv7Generator{}
	}
	harnessOpts := append(harnessOptions(cfg, opts.RootOptions), harness.WithSessionGenerator(sessions))

	if dbPath != "" {
		logger.Info("opening trace database", "path", dbPath)
		st, err := store.Open(dbPath)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to open database: %v", err), nil)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		harnessOpts = append(harnessOpts, harness.WithStore(st))
	}

	logger.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))
	result, err := harness.Run(scenario, harnessOpts...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("execution failed: %v", err), nil)
	}
	logger.Info("scenario finished", "name", scenario.Name, "session", result.Session, "events", len(result.Trace), "pass", result.Pass)

	out := RunResult{
		Name:    scenario.Name,
		Pass:    result.Pass,
		Session: result.Session,
		Events:  len(result.Trace),
		Errors:  result.Errors,
	}

	if formatter.JSON() {
		status := "ok"
		if !out.Pass {
			status = "error"
		}
		if err := formatter.Encode(CLIResponse{Status: status, Data: out, Session: out.Session}); err != nil {
			return err
		}
	} else {
		outputRunText(formatter, out, result)
	}

	if !out.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", out.Name))
	}
	return nil
}

func outputRunText(formatter *OutputFormatter, out RunResult, result *harness.Result) {
	w := formatter.Writer
	mark := "✓"
	if !out.Pass {
		mark = "✗"
	}
	fmt.Fprintf(w, "%s %s (%d events, session %s)\n", mark, out.Name, out.Events, out.Session)
	if formatter.Verbose {
		for _, ev := range result.Trace {
			fmt.Fprintf(w, "  %s\n", ev)
		}
	}
	for _, e := range out.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

// harnessOptions maps settings onto harness options shared by run and test.
func harnessOptions(cfg config.Config, opts *RootOptions) []harness.Option {
	return []harness.Option{
		harness.WithLogger(opts.logger()),
		harness.WithWriteDelay(time.Duration(cfg.Robot.WriteDelayMS) * time.Millisecond),
		harness.WithPanSteps(cfg.Robot.PanSteps),
	}
}

// exitForLoad maps a load failure to an exit code: unreadable paths are
// command errors, invalid scenarios are failures.
func exitForLoad(err *LoadError) int {
	switch err.Code {
	case ErrCodeNotFound, ErrCodeScanError, ErrCodeNoFiles:
		return ExitCommandError
	default:
		return ExitFailure
	}
}
