package harness

import (
	"fmt"

	"github.com/roach88/nono/internal/store"
)

// TraceEvent is one recorded event with its canonical JSON record.
type TraceEvent struct {
	store.Record

	// Doc is the canonical JSON of the event record, the document
	// assertion paths are evaluated against.
	Doc string `json:"-"`
}

func (e TraceEvent) String() string {
	return fmt.Sprintf("[%d] %s %s", e.Seq, e.Kind, e.Target)
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every step behaved as expected and every
	// assertion held.
	Pass bool `json:"pass"`

	// Session is the id the trace was recorded under.
	Session string `json:"session"`

	// Trace is the recorded log in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains step and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(session string) *Result {
	return &Result{
		Pass:    true,
		Session: session,
		Trace:   []TraceEvent{},
		Errors:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func newTraceEvents(records []store.Record) ([]TraceEvent, error) {
	out := make([]TraceEvent, len(records))
	for i, rec := range records {
		doc, err := rec.JSON()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", rec.Seq, err)
		}
		out[i] = TraceEvent{Record: rec, Doc: doc}
	}
	return out, nil
}
