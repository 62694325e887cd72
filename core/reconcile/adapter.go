package reconcile

import "context"

// Adapter defines the model-specific side of reconciliation: how entities are
// keyed, how the stored snapshot is loaded and how two versions are compared.
type Adapter[K comparable, T any] interface {
	// Name returns the unique name of this adapter (e.g., "cards", "banlist").
	Name() string

	// Key returns the natural identity of an entity.
	Key(item T) K

	// LoadStored loads the persisted versions of the given keys in bulk.
	// Keys with no stored row are simply absent from the result.
	LoadStored(ctx context.Context, keys []K) (map[K]T, error)

	// CompareFields compares fetched against stored and returns one description
	// per differing field. An empty result means the entity is unchanged.
	CompareFields(fetched, stored T) []string
}

// Applier writes a single insert or update.
type Applier[K comparable, T any] interface {
	Apply(ctx context.Context, change Change[K, T]) error
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc[K comparable, T any] func(ctx context.Context, change Change[K, T]) error

// Apply calls f.
func (f ApplierFunc[K, T]) Apply(ctx context.Context, change Change[K, T]) error {
	return f(ctx, change)
}
