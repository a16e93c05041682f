package store

// ReadStoreInterface is what the projector, notifier and query side see of
// the read model storage. Collections are flat string-keyed maps; compound
// keys like wishlist_index's "<wishlistID>/<productID>" are the caller's
// convention, not the store's.
type ReadStoreInterface interface {
	// Set stores a read model, replacing any previous value
	Set(collection, id string, data any)

	// Get looks up a single read model
	Get(collection, id string) (any, bool)

	// GetAll returns a collection's read models in no particular order
	GetAll(collection string) []any

	// Delete removes a read model; absent ids are a no-op
	Delete(collection, id string)

	// Update applies updateFn to an existing read model under the store's
	// write lock; returns false when the id is absent
	Update(collection, id string, updateFn func(current any) any) bool
}
