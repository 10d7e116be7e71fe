package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/nono/internal/event"
	"github.com/roach88/nono/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string
	Kinds    []string // optional - filter to these event kinds
	Target   string   // optional - filter to one target label
}

// TraceEvent is one entry of the printed timeline.
type TraceEvent struct {
	Seq       int64          `json:"seq"`
	Kind      string         `json:"kind"`
	Target    string         `json:"target"`
	TimeStamp float64        `json:"timeStamp"`
	Fields    map[string]any `json:"fields"`
	ID        string         `json:"id,omitempty"`
}

// SessionInfo is a session header as listed by trace.
type SessionInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RobotVersion string `json:"robot_version"`
	TraceVersion string `json:"trace_version"`
	Events       int    `json:"events"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Session  SessionInfo  `json:"session"`
	Timeline []TraceEvent `json:"timeline"`
	Stats    TraceStats   `json:"stats"`
}

// TraceStats counts the printed events.
type TraceStats struct {
	TotalEvents int            `json:"total_events"`
	ByCategory  map[string]int `json:"by_category"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print a recorded session",
		Long: `Print the events recorded for a session in dispatch order.

Without --session the sessions in the database are listed instead.

Examples:
  nono trace --db ./nono.db
  nono trace --db ./nono.db --session 0192f0c4-...
  nono trace --db ./nono.db --session golden-session --kind keydown,keyup
  nono trace --db ./nono.db --session golden-session --target "input#name"
  nono trace --db ./nono.db --session golden-session --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite trace database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session id to print")
	cmd.Flags().StringSliceVar(&opts.Kinds, "kind", nil, "filter to event kinds (comma-separated)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "filter to one target label")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	filter := store.Filter{Target: opts.Target}
	for _, name := range opts.Kinds {
		kind, ok := event.ParseKind(name)
		if !ok {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("unknown event kind %q", name), nil)
		}
		filter.Kinds = append(filter.Kinds, kind)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to open database: %v", err), nil)
	}
	defer st.Close()

	if opts.Session == "" {
		return listSessions(ctx, st, formatter)
	}

	sess, err := st.ReadSession(ctx, opts.Session)
	if errors.Is(err, sql.ErrNoRows) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("session not found: %s", opts.Session), nil)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to read session: %v", err), nil)
	}

	records, err := st.QueryEvents(ctx, sess.ID, filter)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to read events: %v", err), nil)
	}

	total, err := st.CountEvents(ctx, sess.ID)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to count events: %v", err), nil)
	}

	result, err := buildTraceResult(sessionInfo(sess, total), records)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}

	if formatter.JSON() {
		return formatter.Encode(CLIResponse{Status: "ok", Data: result, Session: sess.ID})
	}
	outputTraceText(formatter, result)
	return nil
}

func sessionInfo(sess store.Session, events int) SessionInfo {
	return SessionInfo{
		ID:           sess.ID,
		Name:         sess.Name,
		RobotVersion: sess.RobotVersion,
		TraceVersion: sess.TraceVersion,
		Events:       events,
	}
}

// buildTraceResult decodes stored fields and tallies categories.
func buildTraceResult(info SessionInfo, records []store.Record) (TraceResult, error) {
	result := TraceResult{
		Session:  info,
		Timeline: make([]TraceEvent, 0, len(records)),
		Stats:    TraceStats{ByCategory: map[string]int{}},
	}

	for _, rec := range records {
		var fields map[string]any
		if err := json.Unmarshal([]byte(rec.Fields), &fields); err != nil {
			return TraceResult{}, fmt.Errorf("event %d: decode fields: %w", rec.Seq, err)
		}
		result.Timeline = append(result.Timeline, TraceEvent{
			Seq:       rec.Seq,
			Kind:      string(rec.Kind),
			Target:    rec.Target,
			TimeStamp: rec.TimeStamp,
			Fields:    fields,
			ID:        rec.ID,
		})
		result.Stats.ByCategory[string(rec.Category)]++
	}
	result.Stats.TotalEvents = len(result.Timeline)

	return result, nil
}

func listSessions(ctx context.Context, st *store.Store, formatter *OutputFormatter) error {
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to list sessions: %v", err), nil)
	}

	infos := make([]SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		n, err := st.CountEvents(ctx, sess.ID)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to count events: %v", err), nil)
		}
		infos = append(infos, sessionInfo(sess, n))
	}

	if formatter.JSON() {
		return formatter.Encode(CLIResponse{Status: "ok", Data: infos})
	}

	w := formatter.Writer
	if len(infos) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return nil
	}
	for _, info := range infos {
		fmt.Fprintf(w, "%s  %s  (%d events)\n", info.ID, info.Name, info.Events)
	}
	return nil
}

// outputTraceText outputs the trace result as text.
func outputTraceText(formatter *OutputFormatter, result TraceResult) {
	w := formatter.Writer

	fmt.Fprintf(w, "Session: %s (%s)\n", result.Session.ID, result.Session.Name)
	fmt.Fprintf(w, "Robot %s, trace format %s\n", result.Session.RobotVersion, result.Session.TraceVersion)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Timeline ===")
	if len(result.Timeline) == 0 {
		fmt.Fprintln(w, "  (no events)")
	}
	for _, ev := range result.Timeline {
		fmt.Fprintf(w, "  [%d] %-12s %s @%g\n", ev.Seq, ev.Kind, ev.Target, ev.TimeStamp)
		if formatter.Verbose {
			fmt.Fprintf(w, "       Fields: %s\n", formatFields(ev.Fields))
			fmt.Fprintf(w, "       ID: %s\n", truncateID(ev.ID))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Total Events: %d\n", result.Stats.TotalEvents)
	categories := make([]string, 0, len(result.Stats.ByCategory))
	for c := range result.Stats.ByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Fprintf(w, "  %-13s %d\n", c+":", result.Stats.ByCategory[c])
	}
}

// formatFields renders fields with sorted keys for deterministic output.
func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, fields[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// truncateID shortens an event id for display.
func truncateID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12] + "..."
}
