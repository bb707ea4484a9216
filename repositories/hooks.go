package repositories

import (
	"context"
	"sort"
	"sync"
)

// HookFunc is a lifecycle callback fired by a repository around one of
// its mutations. recordID is the affected row id and instance the
// entity value involved in the mutation. Hooks are side channels: they
// must not fail the primary operation, so they return nothing and are
// expected to handle their own errors.
type HookFunc func(ctx context.Context, recordID int, instance any)

// SnapshotFunc loads the currently persisted value of an entity by id
// (a fresh read, not an in-memory copy).
type SnapshotFunc func(ctx context.Context, id int) (any, error)

// EntityHooks holds the lifecycle callbacks installed for one entity
// type. Callbacks are keyed by a slot name so that re-installation
// replaces instead of duplicating.
type EntityHooks struct {
	name     string
	snapshot SnapshotFunc

	mu           sync.RWMutex
	afterCreate  map[string]HookFunc
	beforeUpdate map[string]HookFunc
	beforeDelete map[string]HookFunc
}

// Name returns the entity type name the hooks belong to
func (h *EntityHooks) Name() string {
	return h.name
}

// Snapshot loads the persisted pre-image of the entity with the given id
func (h *EntityHooks) Snapshot(ctx context.Context, id int) (any, error) {
	h.mu.RLock()
	load := h.snapshot
	h.mu.RUnlock()
	return load(ctx, id)
}

// OnAfterCreate installs (or replaces) the named after-create callback
func (h *EntityHooks) OnAfterCreate(slot string, fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.afterCreate[slot] = fn
}

// OnBeforeUpdate installs (or replaces) the named before-update callback
func (h *EntityHooks) OnBeforeUpdate(slot string, fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.beforeUpdate[slot] = fn
}

// OnBeforeDelete installs (or replaces) the named before-delete callback
func (h *EntityHooks) OnBeforeDelete(slot string, fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.beforeDelete[slot] = fn
}

// FireAfterCreate runs all after-create callbacks
func (h *EntityHooks) FireAfterCreate(ctx context.Context, recordID int, instance any) {
	for _, fn := range h.callbacks(h.afterCreate) {
		fn(ctx, recordID, instance)
	}
}

// FireBeforeUpdate runs all before-update callbacks. Repositories call
// it before the UPDATE executes, so callbacks can still fire for a row
// that turns out to be gone; listeners tolerate an entry for a missing
// row rather than the mutation waiting on them.
func (h *EntityHooks) FireBeforeUpdate(ctx context.Context, recordID int, instance any) {
	for _, fn := range h.callbacks(h.beforeUpdate) {
		fn(ctx, recordID, instance)
	}
}

// FireBeforeDelete runs all before-delete callbacks
func (h *EntityHooks) FireBeforeDelete(ctx context.Context, recordID int, instance any) {
	for _, fn := range h.callbacks(h.beforeDelete) {
		fn(ctx, recordID, instance)
	}
}

// callbacks copies a slot map into a deterministically ordered slice
func (h *EntityHooks) callbacks(m map[string]HookFunc) []HookFunc {
	h.mu.RLock()
	defer h.mu.RUnlock()

	slots := make([]string, 0, len(m))
	for slot := range m {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	fns := make([]HookFunc, 0, len(slots))
	for _, slot := range slots {
		fns = append(fns, m[slot])
	}
	return fns
}

// HookRegistry is the explicit registration list of entity types whose
// mutations can be intercepted. Repositories register themselves at
// construction; interceptors iterate the registry once at startup.
type HookRegistry struct {
	mu       sync.Mutex
	order    []string
	entities map[string]*EntityHooks
}

// NewHookRegistry creates an empty hook registry
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		entities: make(map[string]*EntityHooks),
	}
}

// Register adds an entity type to the registry with a loader for its
// persisted snapshots. Registering an already known name updates the
// loader and returns the existing hooks, so callbacks survive
// repository reconstruction.
func (r *HookRegistry) Register(name string, snapshot SnapshotFunc) *EntityHooks {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.entities[name]; ok {
		h.mu.Lock()
		h.snapshot = snapshot
		h.mu.Unlock()
		return h
	}

	h := &EntityHooks{
		name:         name,
		snapshot:     snapshot,
		afterCreate:  make(map[string]HookFunc),
		beforeUpdate: make(map[string]HookFunc),
		beforeDelete: make(map[string]HookFunc),
	}
	r.entities[name] = h
	r.order = append(r.order, name)
	return h
}

// Entities returns all registered entity hooks in registration order
func (r *HookRegistry) Entities() []*EntityHooks {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*EntityHooks, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entities[name])
	}
	return out
}
