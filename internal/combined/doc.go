// Package combined provides interaction benchmarks that exercise several
// packages together.
//
// The harness loop benchmarks put the abort check, the progress ticker and
// a strategy run into one iteration, as internal/harness does. The handoff
// benchmarks isolate the exclusion step itself: N producers hand one
// payload each to a single sink through a mutex, a semaphore, a channel
// or the sharded lock-free ring.
package combined
