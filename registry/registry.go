// Package registry is a named, versioned schema catalog: documents are
// framed with their version, persisted in a pluggable byte Store, and
// compiled codecs are memoized per (name, version) so repeated lookups skip
// decode and compilation. Bumping a schema's version invalidates the memo.
//
// With a shared Store (e.g. Redis) across replicas, pair it with the Redis
// version Counter; a local Counter over a shared Store can regress envelope
// versions after restart.
package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/unkn0wn-root/bitpack"
	"github.com/unkn0wn-root/bitpack/codec"
	"github.com/unkn0wn-root/bitpack/internal/wire"
	"github.com/unkn0wn-root/bitpack/registry/store"
	"github.com/unkn0wn-root/bitpack/registry/versions"
	"github.com/unkn0wn-root/bitpack/schema"
)

// Options tune the registry. Namespace, Store and Codec are required.
type Options struct {
	// Required
	Namespace string // logical namespace to avoid collisions, e.g. "telemetry"
	Store     store.Store
	Codec     codec.Codec[schema.Document]

	Logger   bitpack.Logger   // if nil, logging is disabled
	Versions versions.Counter // nil => versions.NewLocal()
	TTL      time.Duration    // stored documents; 0 => no expiry

	// KeepRaw is forwarded to every compiled codec (see bitpack.Options).
	KeepRaw bool
}

type compiled struct {
	version uint64
	codec   *bitpack.Codec
}

// Registry resolves schema names to compiled bitpack codecs.
type Registry struct {
	ns    string
	store store.Store
	codec codec.Codec[schema.Document]
	log   bitpack.Logger
	vers  versions.Counter
	ttl   time.Duration
	copts bitpack.Options

	mu   sync.RWMutex
	memo map[string]compiled
}

func New(opts Options) (*Registry, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("registry: store is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("registry: codec is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("registry: namespace is required")
	}

	r := &Registry{
		ns:    opts.Namespace,
		store: opts.Store,
		codec: opts.Codec,
		ttl:   opts.TTL,
		memo:  make(map[string]compiled),
	}

	if opts.Logger != nil {
		r.log = opts.Logger
	} else {
		r.log = bitpack.NopLogger{}
	}
	if opts.Versions != nil {
		r.vers = opts.Versions
	} else {
		r.vers = versions.NewLocal()
	}
	r.copts = bitpack.Options{Logger: r.log, KeepRaw: opts.KeepRaw}

	return r, nil
}

func (r *Registry) key(name string) string {
	// isolate by namespace
	return "schema:" + r.ns + ":" + name
}

// Register compiles doc (rejecting malformed schemas up front), bumps its
// version, and persists the envelope-framed document under doc.Name. The
// compiled codec is memoized immediately.
func (r *Registry) Register(ctx context.Context, doc schema.Document) error {
	if doc.Name == "" {
		return fmt.Errorf("registry: document name is required")
	}

	cc, err := doc.Compile(r.copts)
	if err != nil {
		return err
	}

	payload, err := r.codec.Encode(doc)
	if err != nil {
		return err
	}

	v, err := r.vers.Bump(ctx, doc.Name)
	if err != nil {
		return err
	}

	env := wire.EncodeSchema(v, payload)
	ok, err := r.store.Set(ctx, r.key(doc.Name), env, r.ttl)
	if err != nil {
		return err
	}
	if !ok {
		r.log.Warn("schema Set rejected by store (pressure)", bitpack.Fields{"name": doc.Name})
	}

	r.mu.Lock()
	r.memo[doc.Name] = compiled{version: v, codec: cc}
	r.mu.Unlock()

	r.log.Debug("schema registered", bitpack.Fields{"name": doc.Name, "version": v, "bits": cc.BitSize()})
	return nil
}

// Codec returns the compiled codec for name: memo hit when the memoized
// version is current, otherwise load -> decode -> compile -> memoize.
// Returns ok=false when the schema is unknown or its stored entry was
// corrupt (corrupt entries are self-healed by deletion).
func (r *Registry) Codec(ctx context.Context, name string) (*bitpack.Codec, bool, error) {
	cur, err := r.vers.Current(ctx, name)
	if err != nil {
		return nil, false, err
	}

	r.mu.RLock()
	e, ok := r.memo[name]
	r.mu.RUnlock()
	// cur == 0 means this process has not seen a bump yet; trust the memo
	// (a later Invalidate/Register bumps cur and forces a reload).
	if ok && (e.version == cur || cur == 0) {
		return e.codec, true, nil
	}

	doc, ver, ok, err := r.load(ctx, name)
	if err != nil || !ok {
		return nil, false, err
	}

	cc, err := doc.Compile(r.copts)
	if err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	r.memo[name] = compiled{version: ver, codec: cc}
	r.mu.Unlock()

	return cc, true, nil
}

// Document returns the stored schema document without compiling it.
func (r *Registry) Document(ctx context.Context, name string) (schema.Document, bool, error) {
	doc, _, ok, err := r.load(ctx, name)
	return doc, ok, err
}

func (r *Registry) load(ctx context.Context, name string) (schema.Document, uint64, bool, error) {
	var zero schema.Document
	k := r.key(name)

	raw, ok, err := r.store.Get(ctx, k)
	if err != nil || !ok {
		return zero, 0, false, err
	}

	ver, payload, err := wire.DecodeSchema(raw)
	if err != nil {
		// self-heal corrupt entry
		_ = r.store.Del(ctx, k)
		r.log.Warn("corrupt stored schema dropped", bitpack.Fields{"name": name})
		return zero, 0, false, nil
	}

	doc, err := r.codec.Decode(payload)
	if err != nil {
		_ = r.store.Del(ctx, k)
		r.log.Warn("undecodable stored schema dropped", bitpack.Fields{"name": name, "err": err})
		return zero, 0, false, nil
	}

	return doc, ver, true, nil
}

// Invalidate bumps the schema's version and removes its stored document,
// forcing every replica's memo to refresh.
func (r *Registry) Invalidate(ctx context.Context, name string) error {
	v, err := r.vers.Bump(ctx, name)
	if err != nil {
		return err
	}
	_ = r.store.Del(ctx, r.key(name))

	r.mu.Lock()
	delete(r.memo, name)
	r.mu.Unlock()

	r.log.Debug("schema invalidated", bitpack.Fields{"name": name, "newVersion": v})
	return nil
}

// Close releases the version counter (best effort) and the store.
func (r *Registry) Close(ctx context.Context) error {
	if r.vers != nil {
		_ = r.vers.Close(ctx)
	}
	if r.store != nil {
		return r.store.Close(ctx)
	}
	return nil
}
