package store

import (
	"sync"
)

// ReadStore holds the projected view of the shop: the "products", "carts",
// "wishlists", "wishlist_index", "orders", "users" and "notifications"
// collections the query side reads. Everything lives in memory; the
// projector rebuilds it from the event stream on boot.
type ReadStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]any
}

func NewReadStore() *ReadStore {
	return &ReadStore{
		collections: make(map[string]map[string]any),
	}
}

// Set stores a read model under its collection and id, replacing any
// previous value
func (rs *ReadStore) Set(collection, id string, data any) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.collections[collection] == nil {
		rs.collections[collection] = make(map[string]any)
	}
	rs.collections[collection][id] = data
}

// Get looks up a single read model; ok is false when the collection or id
// does not exist
func (rs *ReadStore) Get(collection, id string) (any, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	if rs.collections[collection] == nil {
		return nil, false
	}
	data, ok := rs.collections[collection][id]
	return data, ok
}

// GetAll returns every read model in a collection in no particular order;
// callers that need catalog or chronological order sort the result
func (rs *ReadStore) GetAll(collection string) []any {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	if rs.collections[collection] == nil {
		return nil
	}

	items := make([]any, 0, len(rs.collections[collection]))
	for _, item := range rs.collections[collection] {
		items = append(items, item)
	}
	return items
}

// Delete removes a read model; deleting an absent id is a no-op
func (rs *ReadStore) Delete(collection, id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.collections[collection] != nil {
		delete(rs.collections[collection], id)
	}
}

// Update applies updateFn to an existing read model under the write lock, so
// read-modify-write sequences like a cart total recompute cannot interleave.
// Returns false without calling updateFn when the id is absent.
func (rs *ReadStore) Update(collection, id string, updateFn func(current any) any) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.collections[collection] == nil {
		return false
	}
	current, ok := rs.collections[collection][id]
	if !ok {
		return false
	}
	rs.collections[collection][id] = updateFn(current)
	return true
}
