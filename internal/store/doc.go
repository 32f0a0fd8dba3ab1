// Package store provides SQLite-backed storage for saved axes and the
// divisions computed from them.
//
// The store holds two tables:
//   - axes: one row per axis name, with the canonical JSON of its
//     configuration and a content hash
//   - snapshots: computed divisions, content addressed per axis
//
// # Identity and Ordering
//
// Rows get UUIDv7 IDs and a seq number from a logical clock. Queries order
// by seq ASC, id ASC COLLATE BINARY so results are identical across runs;
// wall-clock time is never stored.
//
// Snapshots are idempotent: UNIQUE(axis_id, hash) makes writing the same
// division twice a no-op that returns the existing row.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Canonical JSON and hashes come from internal/snapshot.
package store
