package notification

import (
	"sort"
	"sync"
	"time"

	"booking-admin/internal/model"
)

// Registry keeps the browser push subscriptions of operators in memory.
type Registry struct {
	mu   sync.RWMutex
	subs map[string]model.PushSubscription
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]model.PushSubscription)}
}

// Put creates or replaces the subscription with the same endpoint.
// It reports whether the endpoint was new.
func (r *Registry) Put(sub model.PushSubscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, exists := r.subs[sub.Endpoint]
	if exists {
		sub.CreatedAt = old.CreatedAt
	} else if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	r.subs[sub.Endpoint] = sub
	return !exists
}

// Get looks up a subscription by endpoint.
func (r *Registry) Get(endpoint string) (model.PushSubscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[endpoint]
	return sub, ok
}

// Delete removes a subscription and reports whether it existed.
func (r *Registry) Delete(endpoint string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.subs[endpoint]
	delete(r.subs, endpoint)
	return ok
}

// All returns the subscriptions ordered by endpoint.
func (r *Registry) All() []model.PushSubscription {
	r.mu.RLock()
	out := make([]model.PushSubscription, 0, len(r.subs))
	for _, s := range r.subs {
		out = append(out, s)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Endpoint < out[j].Endpoint })
	return out
}
