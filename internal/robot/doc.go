// Package robot synthesizes input events and dispatches them to sinks.
//
// A Robot is a fluent, single-goroutine event generator:
//
//	r := robot.New(doc, robot.WithTarget(button))
//	r.KeepData().
//		Click(event.MouseInit{Button: event.Some(1)}).
//		Click(event.MouseInit{}).
//		Pan(1, 100, robot.Bottom, event.TouchPointInit{}, robot.WithSteps(2))
//	if err := r.Err(); err != nil { ... }
//
// Every call resolves a target sink, normalizes the caller's fields
// (optionally merging them with the previous call of the same category),
// builds an event and hands it to the Dispatcher before returning.
//
// Key invariants:
//   - Dispatch is synchronous; there is no queue
//   - The first failure is recorded; later calls are no-ops until ResetErr
//   - Ongoing touches are tracked per sink, in insertion order
//   - Every emitted event gets a strictly increasing seq from the Clock
//
// A Robot is not safe for concurrent use.
package robot
