package settings

import (
	"sort"
	"sync"
)

// Change describes a plugin load or refresh.
type Change struct {
	// PluginID identifies the plugin that changed.
	PluginID string

	// Plugin is the plugin's new state.
	Plugin *Plugin
}

// Handler is called when a plugin loads or refreshes.
type Handler func(change Change)

// Subscription represents an active change handler registration.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the handler. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}

// OnPluginChanged registers a handler for plugin loads and refreshes.
// Handlers run on the load queue goroutine, in load-completion order.
func (r *Registry) OnPluginChanged(fn Handler) *Subscription {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.handlers[id] = fn
	r.mu.Unlock()

	return &Subscription{cancel: func() {
		r.mu.Lock()
		delete(r.handlers, id)
		r.mu.Unlock()
	}}
}

// notify delivers a change to all handlers outside the lock, in
// registration order.
func (r *Registry) notify(change Change) {
	r.mu.RLock()
	ids := make([]uint64, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]Handler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, r.handlers[id])
	}
	r.mu.RUnlock()

	for _, fn := range handlers {
		fn(change)
	}
}
