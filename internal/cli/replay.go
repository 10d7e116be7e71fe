package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/nono/internal/harness"
	"github.com/roach88/nono/internal/schema"
	"github.com/roach88/nono/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string
}

// ReplayResult is the JSON payload of the replay command.
type ReplayResult struct {
	Name          string `json:"name"`
	Session       string `json:"session"`
	Recorded      int    `json:"recorded"`
	Replayed      int    `json:"replayed"`
	Deterministic bool   `json:"deterministic"`
	Divergence    string `json:"divergence,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <scenario>",
		Short: "Rerun a scenario and compare with its recorded session",
		Long: `Rerun a scenario in memory and compare the trace, event by event, with
the session recorded in the database. The session defaults to the one the
scenario names.

Exit codes:
  0 - Replay reproduced the recording exactly
  1 - Replay diverged
  2 - Command error (missing database, unknown session, etc.)

Examples:
  nono replay ./scenarios/typing.yaml --db ./nono.db --session 0192f0c4-...
  nono replay ./scenarios/change_and_key.yaml --db ./nono.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite trace database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "recorded session to compare against")

	return cmd
}

func runReplay(opts *ReplayOptions, path string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	validator, err := schema.New()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compile scenario schema", err)
	}
	scenario, loadErrs := LoadScenarioFile(validator, path)
	if len(loadErrs) > 0 {
		first := loadErrs[0]
		return formatter.Fail(exitForLoad(first), first.Code, first.Error(), loadErrs)
	}

	session := opts.Session
	if session == "" {
		session = scenario.Session
	}
	if session == "" {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "scenario names no session; pass --session", nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to open database: %v", err), nil)
	}
	defer st.Close()

	recorded, err := st.ReadEvents(ctx, session)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to read events: %v", err), nil)
	}
	if len(recorded) == 0 {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("no events recorded for session: %s", session), nil)
	}

	result, div, err := harness.Replay(scenario, session, recorded, harnessOptions(opts.config(), opts.RootOptions)...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("replay failed: %v", err), nil)
	}

	out := ReplayResult{
		Name:          scenario.Name,
		Session:       session,
		Recorded:      len(recorded),
		Replayed:      len(result.Trace),
		Deterministic: div == nil,
	}
	if div != nil {
		out.Divergence = div.Error()
	}

	if formatter.JSON() {
		status := "ok"
		if div != nil {
			status = "error"
		}
		if err := formatter.Encode(CLIResponse{Status: status, Data: out, Session: session}); err != nil {
			return err
		}
	} else if div == nil {
		fmt.Fprintf(formatter.Writer, "✓ %s replayed %d events identically (session %s)\n", out.Name, out.Replayed, session)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %s diverged from session %s\n", out.Name, session)
		fmt.Fprintf(formatter.Writer, "  %s\n", out.Divergence)
	}

	if div != nil {
		return NewExitError(ExitFailure, fmt.Sprintf("replay of %s diverged", out.Name))
	}
	return nil
}
