// Package store defines the byte-store abstraction the schema registry
// persists documents in.
//
// Implementations MUST be byte-for-byte transparent: Get must return
// exactly the same []byte previously passed to Set for a key (no
// prepended/appended metadata, no re-encoding, no mutation). If a store
// performs internal transforms (e.g. compression), they MUST be fully
// reversed on read.
//
// The keyspace "schema:<ns>:" is owned by the registry; external code MUST
// NOT write under it. Foreign writes may be treated as corruption by the
// registry's envelope validation and deleted.
package store

import (
	"context"
	"time"
)

// Store is a minimal byte store with optional TTLs. Must be safe for
// concurrent use.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL; ttl <= 0 means "no expiry"
	// where the backend supports it. Returns ok=false when the store
	// rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
