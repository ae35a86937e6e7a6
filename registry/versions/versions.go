// Package versions abstracts where schema version counters live. Use Local
// (default) for in-process counters, or Redis to share versions across
// replicas and survive restarts.
package versions

import "context"

// Counter is a monotonically increasing version per schema name.
// A name never registered reports version 0.
type Counter interface {
	// Current returns the current version; missing => 0.
	Current(ctx context.Context, name string) (uint64, error)
	// Bump atomically increments and returns the new version.
	Bump(ctx context.Context, name string) (uint64, error)
	// Close releases resources (no-op ok).
	Close(ctx context.Context) error
}
