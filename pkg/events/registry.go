package events

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// cacheKey identifies a memoized resolution: the event's dynamic type plus
// the dynamic type of its source (nil for sourceless events).
type cacheKey struct {
	event  reflect.Type
	source reflect.Type
}

// cachedRef is one slot of a memoized match result, in final delivery order.
// Direct registrations are stored as instances; by-name registrations keep
// only the name and are resolved again on every publish.
type cachedRef struct {
	listener Listener // nil for by-name slots
	name     string
}

// cacheEntry is the ordered match result for one cacheKey.
type cacheEntry struct {
	refs []cachedRef
}

// resolvedListener pairs a live listener with the provider name it came
// from, empty for direct registrations.
type resolvedListener struct {
	listener Listener
	name     string
}

// RegistrySnapshot is a point-in-time view of the registrations, safe to
// expose over introspection endpoints.
type RegistrySnapshot struct {
	Listeners  []string `json:"listeners"`   // concrete types of direct registrations
	Names      []string `json:"names"`       // provider names
	CachedKeys int      `json:"cached_keys"` // memoized (event type, source type) pairs
}

// registry holds the listener collections and the resolution cache.
//
// mu guards the collections and the version counter. Cache reads are
// lock-free; every mutation clears the whole cache and bumps the version
// inside the same critical section, and a computed result is stored only if
// the version is still the one observed when the collections were
// snapshotted. Concurrent misses for the same key may both compute; the
// last store wins.
type registry struct {
	mu        sync.Mutex
	listeners []Listener
	names     []string
	version   uint64

	cache sync.Map // cacheKey -> *cacheEntry

	provider  ListenerProvider
	ordering  OrderingPolicy
	retention RetentionPolicy
}

func newRegistry(provider ListenerProvider, ordering OrderingPolicy, retention RetentionPolicy) *registry {
	return &registry{
		provider:  provider,
		ordering:  ordering,
		retention: retention,
	}
}

func (r *registry) register(l Listener) {
	if l == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	exists := slices.ContainsFunc(r.listeners, func(existing Listener) bool {
		return sameIdentity(existing, l)
	})
	if exists {
		return
	}

	r.listeners = append(r.listeners, l)
	r.invalidate()
}

func (r *registry) registerByName(name string) {
	if name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(r.names, name) {
		return
	}

	r.names = append(r.names, name)
	r.invalidate()
}

func (r *registry) unregister(l Listener) {
	if l == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.listeners, func(existing Listener) bool {
		return sameIdentity(existing, l)
	})
	if idx < 0 {
		return
	}

	r.listeners = slices.Delete(r.listeners, idx, idx+1)
	r.invalidate()
}

func (r *registry) unregisterByName(name string) {
	if name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.Index(r.names, name)
	if idx < 0 {
		return
	}

	r.names = slices.Delete(r.names, idx, idx+1)
	r.invalidate()
}

func (r *registry) unregisterAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners = nil
	r.names = nil
	r.invalidate()
}

// invalidate must run with mu held.
func (r *registry) invalidate() {
	r.version++
	r.cache.Clear()
}

// resolve returns the ordered listeners matching the event, serving
// repeated (event type, source type) pairs from the cache. By-name matches
// go through the provider on every call, cached or not.
func (r *registry) resolve(event Event) ([]Listener, error) {
	key := cacheKey{event: reflect.TypeOf(event)}
	if source := event.Source(); source != nil {
		key.source = reflect.TypeOf(source)
	}

	if cached, ok := r.cache.Load(key); ok {
		return r.materialize(cached.(*cacheEntry))
	}

	r.mu.Lock()
	candidates := slices.Clone(r.listeners)
	names := slices.Clone(r.names)
	version := r.version
	r.mu.Unlock()

	matches, err := r.match(candidates, names, key)
	if err != nil {
		return nil, err
	}

	if r.retention.IsSafeToCache(key.event) && r.retention.IsSafeToCache(key.source) {
		entry := &cacheEntry{refs: make([]cachedRef, 0, len(matches))}
		for _, match := range matches {
			if match.name != "" {
				entry.refs = append(entry.refs, cachedRef{name: match.name})
				continue
			}
			entry.refs = append(entry.refs, cachedRef{listener: match.listener})
		}

		r.mu.Lock()
		if r.version == version {
			r.cache.Store(key, entry)
		}
		r.mu.Unlock()
	}

	listeners := make([]Listener, len(matches))
	for i, match := range matches {
		listeners[i] = match.listener
	}
	return listeners, nil
}

// match filters and orders the candidates for key. Runs without the
// registry mutex so listener predicates may take arbitrary time.
func (r *registry) match(candidates []Listener, names []string, key cacheKey) ([]resolvedListener, error) {
	matches := make([]resolvedListener, 0, len(candidates)+len(names))

	for _, candidate := range candidates {
		if supportsEvent(AsSmartListener(candidate), key) {
			matches = append(matches, resolvedListener{listener: candidate})
		}
	}

	for _, name := range names {
		listener, err := r.listenerByName(name)
		if err != nil {
			return nil, err
		}
		if !supportsEvent(AsSmartListener(listener), key) {
			continue
		}

		// A listener registered both directly and by name fires once.
		duplicate := slices.ContainsFunc(matches, func(match resolvedListener) bool {
			return sameIdentity(match.listener, listener)
		})
		if duplicate {
			continue
		}

		matches = append(matches, resolvedListener{listener: listener, name: name})
	}

	slices.SortStableFunc(matches, func(a, b resolvedListener) int {
		return r.ordering.Compare(a.listener, b.listener)
	})

	return matches, nil
}

// listenerByName resolves one registered name through the provider.
func (r *registry) listenerByName(name string) (Listener, error) {
	if r.provider == nil {
		return nil, fmt.Errorf("%w: cannot resolve listener %q", ErrNoListenerProvider, name)
	}

	listener, err := r.provider.ListenerByName(name)
	if err != nil {
		return nil, fmt.Errorf("resolving listener %q: %w", name, err)
	}
	if listener == nil {
		return nil, fmt.Errorf("%w: provider returned no instance for %q", ErrListenerNotFound, name)
	}
	return listener, nil
}

// supportsEvent evaluates both interest predicates against the key.
func supportsEvent(l SmartListener, key cacheKey) bool {
	return l.SupportsEventType(key.event) && l.SupportsSourceType(key.source)
}

// materialize turns a cache entry back into live listeners: instances are
// used as stored, names go through the provider into their recorded
// positions. Entries are stored pre-ordered, so no re-sort happens here.
func (r *registry) materialize(entry *cacheEntry) ([]Listener, error) {
	listeners := make([]Listener, 0, len(entry.refs))
	for _, ref := range entry.refs {
		if ref.name == "" {
			listeners = append(listeners, ref.listener)
			continue
		}

		listener, err := r.listenerByName(ref.name)
		if err != nil {
			return nil, err
		}
		listeners = append(listeners, listener)
	}
	return listeners, nil
}

func (r *registry) snapshot() RegistrySnapshot {
	r.mu.Lock()
	snap := RegistrySnapshot{
		Listeners: make([]string, len(r.listeners)),
		Names:     append(make([]string, 0, len(r.names)), r.names...),
	}
	for i, l := range r.listeners {
		snap.Listeners[i] = fmt.Sprintf("%T", l)
	}
	r.mu.Unlock()

	r.cache.Range(func(_, _ any) bool {
		snap.CachedKeys++
		return true
	})

	return snap
}
