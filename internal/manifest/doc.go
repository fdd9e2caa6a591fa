// Package manifest provides SQLite-backed recording of compile runs.
//
// Each batch or single-entry compile may record a run: one row per run,
// one per compiled entry with its destination and status, and one per
// expansion diagnostic (cycle, unresolvable reference). The manifest is an
// audit trail, not an input: expansion never reads it, and a missing or
// disabled manifest changes nothing about compilation.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: entries and diagnostics reference their run
package manifest
