package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/nono/internal/event"
	"github.com/roach88/nono/internal/robot"
)

// Scenario drives a robot against an HTML document and asserts on the
// recorded trace.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Session is an optional fixed session id for the trace.
	Session string `yaml:"session,omitempty"`

	// Document is the HTML the robot dispatches into.
	Document string `yaml:"document"`

	// Target is the selector of the initial default target.
	Target string `yaml:"target,omitempty"`

	// Reject installs listeners that fail, so steps can exercise
	// dispatch failures.
	Reject []Reject `yaml:"reject,omitempty"`

	// Steps run in order against a single robot.
	Steps []Step `yaml:"steps"`

	// Assertions validate the recorded trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Reject makes every node matching Selector fail events of Kind.
type Reject struct {
	Selector string     `yaml:"selector"`
	Kind     event.Kind `yaml:"kind"`
	Message  string     `yaml:"message,omitempty"`
}

// Step is one robot call.
type Step struct {
	// Do is an event kind or one of write, pan, keep_data, flush_data.
	Do string `yaml:"do"`

	// Target selects the default target before the call.
	Target string `yaml:"target,omitempty"`

	// Count repeats the step. For the click family it is the click count.
	Count event.Opt[int] `yaml:"count"`

	// PressRelease turns clicks into mousedown/mouseup pairs.
	PressRelease bool `yaml:"press_release,omitempty"`

	Mouse    event.MouseInit    `yaml:"mouse"`
	Wheel    event.WheelInit    `yaml:"wheel"`
	Keyboard event.KeyboardInit `yaml:"keyboard"`
	UI       event.UIInit       `yaml:"ui"`
	Input    event.InputInit    `yaml:"input"`
	Change   event.EventInit    `yaml:"change"`
	Touch    event.TouchInit    `yaml:"touch"`

	// Touches are appended to Touch.ChangedTouches.
	Touches []event.TouchPointInit `yaml:"touches,omitempty"`

	// Timestamp overrides the clock for touch events.
	Timestamp event.Opt[float64] `yaml:"timestamp"`

	Pan *Pan `yaml:"pan,omitempty"`

	// Text is typed by write.
	Text string `yaml:"text,omitempty"`

	// DelayMS is the per-character write delay.
	DelayMS event.Opt[int] `yaml:"delay_ms"`

	// ExpectError is the robot error code the step must fail with.
	ExpectError robot.ErrorCode `yaml:"expect_error,omitempty"`
}

// Pan is a pan gesture step.
type Pan struct {
	IDs       []int                  `yaml:"ids"`
	Distance  float64                `yaml:"distance"`
	Direction string                 `yaml:"direction"`
	Deviation float64                `yaml:"deviation,omitempty"`
	Steps     event.Opt[int]         `yaml:"steps"`
	Starts    []event.TouchPointInit `yaml:"starts,omitempty"`
	Touch     event.TouchInit        `yaml:"touch"`
}

// Actions that are not event kinds.
const (
	ActionWrite     = "write"
	ActionPan       = "pan"
	ActionKeepData  = "keep_data"
	ActionFlushData = "flush_data"
)

// Assertion validates the trace.
type Assertion struct {
	// Type is one of trace_count, trace_contains, trace_order, event.
	Type string `yaml:"type"`

	// Kind is the event kind (trace_count, trace_contains, event).
	Kind event.Kind `yaml:"kind,omitempty"`

	// Count is the expected number of events (trace_count).
	Count int `yaml:"count,omitempty"`

	// Target restricts trace_count to one target label.
	Target string `yaml:"target,omitempty"`

	// Fields maps gjson paths into the event record to expected values
	// (trace_contains, event). Subset match.
	Fields map[string]any `yaml:"fields,omitempty"`

	// Kinds is the expected subsequence of kinds (trace_order).
	Kinds []event.Kind `yaml:"kinds,omitempty"`

	// Nth selects the zero-based occurrence of Kind (event).
	Nth int `yaml:"nth,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceCount    = "trace_count"
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertEvent         = "event"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Document == "" {
		return fmt.Errorf("document is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, r := range s.Reject {
		if r.Selector == "" {
			return fmt.Errorf("reject[%d]: selector is required", i)
		}
		if !r.Kind.Valid() {
			return fmt.Errorf("reject[%d]: unknown kind %q", i, r.Kind)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(step Step) error {
	switch step.Do {
	case "":
		return fmt.Errorf("do is required")
	case ActionWrite:
		if step.Text == "" {
			return fmt.Errorf("text is required for write")
		}
	case ActionPan:
		if step.Pan == nil {
			return fmt.Errorf("pan is required for pan")
		}
	case ActionKeepData, ActionFlushData:
	default:
		if !event.Kind(step.Do).Valid() {
			return fmt.Errorf("unknown action %q", step.Do)
		}
	}

	if step.Count.IsSet() && step.Count.Value() < 0 {
		return fmt.Errorf("count must be non-negative")
	}
	if step.DelayMS.IsSet() && step.DelayMS.Value() < 0 {
		return fmt.Errorf("delay_ms must be non-negative")
	}

	switch step.ExpectError {
	case "", robot.ErrCodeMissingTarget, robot.ErrCodeInvalidGesture,
		robot.ErrCodeInvalidDirection, robot.ErrCodeDispatchFailed:
	default:
		return fmt.Errorf("unknown expect_error code %q", step.ExpectError)
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceCount, AssertTraceContains, AssertEvent:
		if !a.Kind.Valid() {
			return fmt.Errorf("assertions[%d]: valid kind is required for %s, got %q", index, a.Type, a.Kind)
		}
		if a.Type == AssertTraceCount && a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
		if a.Type == AssertEvent && a.Nth < 0 {
			return fmt.Errorf("assertions[%d]: nth must be non-negative for event", index)
		}
	case AssertTraceOrder:
		if len(a.Kinds) == 0 {
			return fmt.Errorf("assertions[%d]: kinds list is required for trace_order", index)
		}
		for _, k := range a.Kinds {
			if !k.Valid() {
				return fmt.Errorf("assertions[%d]: unknown kind %q", index, k)
			}
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
