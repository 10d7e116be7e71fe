package harness

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/roach88/nono/internal/event"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, ev := range e.Trace {
		fmt.Fprintf(&buf, "  %s\n", ev)
	}

	return buf.String()
}

// assertTraceCount checks that kind appears exactly Count times, on
// Target when one is given.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, ev := range trace {
		if ev.Kind == a.Kind && (a.Target == "" || ev.Target == a.Target) {
			count++
		}
	}

	if count != a.Count {
		what := string(a.Kind)
		if a.Target != "" {
			what += " on " + a.Target
		}
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, what),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceContains checks that some event of Kind matches every path
// in Fields.
func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, ev := range trace {
		if ev.Kind == a.Kind && matchFields(ev.Doc, a.Fields) == "" {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("%s with %s", a.Kind, describeFields(a.Fields)),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that Kinds appear as a subsequence of the trace.
// Intervening events are allowed.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	next := 0
	for _, ev := range trace {
		if next < len(a.Kinds) && ev.Kind == a.Kinds[next] {
			next++
		}
	}

	if next < len(a.Kinds) {
		return &AssertionError{
			Type:     AssertTraceOrder,
			Expected: fmt.Sprintf("kinds in order: %v", a.Kinds),
			Actual:   fmt.Sprintf("matched %d of %d, missing %s", next, len(a.Kinds), a.Kinds[next]),
			Trace:    trace,
		}
	}
	return nil
}

// assertEvent checks the Nth (zero-based) event of Kind against Fields.
func assertEvent(trace []TraceEvent, a Assertion) error {
	var seen int
	for _, ev := range trace {
		if ev.Kind != a.Kind {
			continue
		}
		if seen < a.Nth {
			seen++
			continue
		}
		if mismatch := matchFields(ev.Doc, a.Fields); mismatch != "" {
			return &AssertionError{
				Type:     AssertEvent,
				Expected: fmt.Sprintf("%s #%d with %s", a.Kind, a.Nth, describeFields(a.Fields)),
				Actual:   mismatch,
				Trace:    trace,
			}
		}
		return nil
	}

	return &AssertionError{
		Type:     AssertEvent,
		Expected: fmt.Sprintf("%s #%d", a.Kind, a.Nth),
		Actual:   fmt.Sprintf("only %d %s event(s)", seen, a.Kind),
		Trace:    trace,
	}
}

// matchFields evaluates each gjson path against doc and returns a
// description of the first mismatch, or "" when all match.
// Paths are checked in sorted order so failures are deterministic.
func matchFields(doc string, fields map[string]any) string {
	for _, path := range slices.Sorted(maps.Keys(fields)) {
		got := gjson.Get(doc, path)
		if !got.Exists() {
			return fmt.Sprintf("%s missing", path)
		}
		want := normalize(fields[path])
		if !reflect.DeepEqual(got.Value(), want) {
			return fmt.Sprintf("%s = %s, want %v", path, got.Raw, want)
		}
	}
	return ""
}

// normalize converts YAML-decoded values to the types gjson produces:
// every number is a float64.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalize(e)
		}
		return out
	default:
		return v
	}
}

func describeFields(fields map[string]any) string {
	if len(fields) == 0 {
		return "any fields"
	}
	parts := make([]string, 0, len(fields))
	for _, path := range slices.Sorted(maps.Keys(fields)) {
		parts = append(parts, fmt.Sprintf("%s=%v", path, fields[path]))
	}
	return strings.Join(parts, ", ")
}

// EvaluateAssertions evaluates all assertions against the trace.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(trace []TraceEvent, assertions []Assertion) []string {
	var errors []string

	for i, a := range assertions {
		var err error

		switch a.Type {
		case AssertTraceCount:
			err = assertTraceCount(trace, a)
		case AssertTraceContains:
			err = assertTraceContains(trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(trace, a)
		case AssertEvent:
			err = assertEvent(trace, a)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

// KindsOf lists the kinds of trace in order.
func KindsOf(trace []TraceEvent) []event.Kind {
	out := make([]event.Kind, len(trace))
	for i, ev := range trace {
		out[i] = ev.Kind
	}
	return out
}
