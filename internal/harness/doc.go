// Package harness runs robot scenarios and checks their traces.
//
// A scenario is a YAML file naming an HTML document, a list of robot steps
// and assertions over the recorded trace:
//
//	name: click_counter
//	description: Two clicks on the button
//	document: |
//	  <div id="app"><button id="inc">+</button></div>
//	target: "#inc"
//	steps:
//	  - do: click
//	    count: 2
//	assertions:
//	  - type: trace_count
//	    kind: click
//	    count: 2
//
// Each run parses the document, records every dispatched event into a
// fresh in-memory store (unless a store is supplied) and delivers it into
// the document with bubbling. Timestamps come from a step clock and write
// delays from a manual timer, so the same scenario always produces a
// byte-identical trace. The trace is read back from the store, which makes
// golden snapshots a check on the persisted log and not only on the robot.
//
// # Assertions
//
//   - trace_count: exact number of events of a kind, optionally per target
//   - trace_contains: some event of a kind matches every gjson path in fields
//   - trace_order: the kinds appear as a subsequence of the trace
//   - event: the nth event of a kind matches every path in fields
//
// Paths are evaluated against the event record
// {kind, seq, timeStamp, target, fields}, e.g. fields.button or
// fields.changedTouches.0.identifier.
//
// # Golden files
//
// RunWithGolden compares the canonical JSON snapshot of a run against
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
