// Package store provides SQLite-backed storage for benchmark sweep records.
//
// A sweep is one invocation of the benchmark over a qubit range; each qubit
// count produces one run row holding the elapsed time, the outcome status and
// a fingerprint of the flattened result.
//
// # Ordering
//
// All list queries order by seq ASC, id ASC COLLATE BINARY so that reads are
// deterministic. Wall-clock time is stored only as a duration.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Runs must reference an existing sweep
//
// Writes use ON CONFLICT DO NOTHING, so re-recording a sweep is a no-op.
package store
