package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/nono/internal/dom"
	"github.com/roach88/nono/internal/event"
	"github.com/roach88/nono/internal/logging"
	"github.com/roach88/nono/internal/robot"
	"github.com/roach88/nono/internal/store"
	"github.com/roach88/nono/internal/testutil"
)

// DefaultPanSteps is used by pan steps that set no steps.
const DefaultPanSteps = 1

// Option configures a run.
type Option func(*config)

type config struct {
	store      *store.Store
	sessions   store.SessionGenerator
	logger     *slog.Logger
	writeDelay time.Duration
	panSteps   int
}

// WithStore records into st instead of a fresh in-memory store.
// The caller keeps ownership of st.
func WithStore(st *store.Store) Option {
	return func(c *config) {
		c.store = st
	}
}

// WithSessionGenerator supplies the session id for scenarios that name
// none. Default: a fixed "test-session-default".
func WithSessionGenerator(g store.SessionGenerator) Option {
	return func(c *config) {
		c.sessions = g
	}
}

// WithLogger sets the logger handed to the robot. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithWriteDelay sets the delay of write steps without delay_ms.
func WithWriteDelay(d time.Duration) Option {
	return func(c *config) {
		c.writeDelay = d
	}
}

// WithPanSteps sets the steps of pan steps without steps.
func WithPanSteps(n int) Option {
	return func(c *config) {
		c.panSteps = n
	}
}

// Harness holds the state of a single scenario run.
type Harness struct {
	robot  *robot.Robot
	doc    *dom.Document
	clock  *testutil.StepClock
	timer  *testutil.ManualTimer
	logger *slog.Logger
	cfg    config
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Parse the document and install reject listeners
// 2. Open the session in the store
// 3. Run each step, checking expect_error
// 4. Read the trace back from the store
// 5. Evaluate assertions
//
// The returned error is for infrastructure failures (bad document, store
// errors). Step and assertion failures are reported in the Result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := config{
		sessions: testutil.NewFixedSessionGenerator(""),
		logger:   logging.Discard(),
		panSteps: DefaultPanSteps,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	doc, err := dom.Parse(scenario.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if err := installRejects(doc, scenario.Reject); err != nil {
		return nil, err
	}

	st := cfg.store
	if st == nil {
		st, err = store.OpenMemory()
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		defer st.Close()
	}

	session := scenario.Session
	if session == "" {
		session = cfg.sessions.Generate()
	}

	ctx := context.Background()
	if err := st.BeginSession(ctx, store.NewSession(session, scenario.Name)); err != nil {
		return nil, err
	}

	h := &Harness{
		doc:    doc,
		clock:  testutil.NewStepClock(0, 1),
		timer:  testutil.NewManualTimer(),
		logger: cfg.logger,
		cfg:    cfg,
	}

	robotOpts := []robot.Option{
		robot.WithSelectorFunc(doc.Lookup),
		robot.WithNow(h.clock.Now),
		robot.WithTimer(h.timer),
		robot.WithLogger(cfg.logger),
		robot.WithContext(ctx),
	}
	if scenario.Target != "" {
		robotOpts = append(robotOpts, robot.WithSelector(scenario.Target))
	}
	h.robot = robot.New(store.NewRecorder(st, session, doc), robotOpts...)

	result := NewResult(session)
	h.runSteps(scenario.Steps, result)

	records, err := st.ReadEvents(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	if result.Trace, err = newTraceEvents(records); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	for _, msg := range EvaluateAssertions(result.Trace, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// runSteps stops at the first step that fails unexpectedly; later steps
// would run against a state the scenario did not describe.
func (h *Harness) runSteps(steps []Step, result *Result) {
	for i, step := range steps {
		h.runStep(step)
		err := h.robot.ResetErr()

		switch {
		case step.ExpectError != "" && robot.CodeOf(err) != step.ExpectError:
			result.AddError(fmt.Sprintf("steps[%d] (%s): expected error %s, got %v", i, step.Do, step.ExpectError, err))
			return
		case step.ExpectError == "" && err != nil:
			result.AddError(fmt.Sprintf("steps[%d] (%s): %v", i, step.Do, err))
			return
		}

		h.logger.Debug("step completed",
			"step", i,
			"do", step.Do,
			"seq", h.robot.Clock().Current(),
		)
	}

	// Write delays are inert; drain them so nothing is left pending.
	h.timer.RunAll()
}

func installRejects(doc *dom.Document, rejects []Reject) error {
	for i, r := range rejects {
		nodes, err := doc.QuerySelectorAll(r.Selector)
		if err != nil {
			return fmt.Errorf("reject[%d]: %w", i, err)
		}
		msg := r.Message
		if msg == "" {
			msg = fmt.Sprintf("%s rejected", r.Kind)
		}
		for _, n := range nodes {
			n.AddEventListener(r.Kind, func(*event.Event, *dom.Node) error {
				return errors.New(msg)
			})
		}
	}
	return nil
}
