package events

import (
	"fmt"
	"reflect"
	"sync"
)

// ListenerProvider resolves listener names registered through RegisterByName
// into live instances. Resolution happens on every publish, so a provider
// may swap the instance behind a name at any time.
type ListenerProvider interface {
	// ListenerByName returns the listener registered under name.
	// A missing name must return an error wrapping ErrListenerNotFound.
	ListenerByName(name string) (Listener, error)
}

// RetentionPolicy decides which resolved (event type, source type) pairs may
// be memoized. A false verdict for either component of the pair makes every
// publish with that pair recompute the match.
type RetentionPolicy interface {
	// IsSafeToCache reports whether resolution results involving t may be
	// kept. t is nil for events without a source.
	IsSafeToCache(t reflect.Type) bool
}

// defaultRetentionPolicy keeps everything.
type defaultRetentionPolicy struct{}

func (defaultRetentionPolicy) IsSafeToCache(reflect.Type) bool { return true }

// StaticListenerProvider is a map-backed ListenerProvider for wiring by-name
// listeners without a dependency container.
type StaticListenerProvider struct {
	mu        sync.RWMutex
	listeners map[string]Listener
}

// NewStaticListenerProvider creates an empty provider.
func NewStaticListenerProvider() *StaticListenerProvider {
	return &StaticListenerProvider{listeners: make(map[string]Listener)}
}

// Add registers or replaces the listener behind name.
func (p *StaticListenerProvider) Add(name string, listener Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners[name] = listener
}

// Remove drops the listener behind name. Unknown names are ignored.
func (p *StaticListenerProvider) Remove(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.listeners, name)
}

// ListenerByName implements ListenerProvider.
func (p *StaticListenerProvider) ListenerByName(name string) (Listener, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	listener, ok := p.listeners[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrListenerNotFound, name)
	}
	return listener, nil
}
