// Package store provides a SQLite-backed trace log of dispatched events.
//
// The log is append-only:
//   - Sessions: one per robot run (scenario, CLI invocation, test)
//   - Events: every event the robot dispatched, in seq order
//
// # Ordering and identity
//
//   - All ordering uses seq (the robot's logical clock), never timestamps
//   - Queries order by seq ASC, id ASC COLLATE BINARY
//   - Event IDs are content-addressed (event.ID), so writes are idempotent
//   - Fields are stored as canonical JSON and read back byte-identical
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The log is inspected (nono trace, harness assertions) but never replayed
// into a robot.
package store
