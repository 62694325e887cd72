package reconcile

// ChangeKind classifies one fetched entity against its stored counterpart.
type ChangeKind string

const (
	// KindInsert marks an entity absent from storage.
	KindInsert ChangeKind = "insert"
	// KindUpdate marks an entity whose stored fields differ from the fetched ones.
	KindUpdate ChangeKind = "update"
	// KindUnchanged marks an exact match; it is never written.
	KindUnchanged ChangeKind = "unchanged"
)

// Change is the reconciliation outcome for a single entity.
type Change[K comparable, T any] struct {
	// Key is the natural identity of the entity.
	Key K `json:"key"`

	// Kind is the planned write.
	Kind ChangeKind `json:"kind"`

	// Fields lists the differing fields for updates, e.g. "atk: fetched=2500 stored=3000".
	Fields []string `json:"fields,omitempty"`

	// Fetched is the authoritative remote value.
	Fetched T `json:"-"`

	// Stored is the current persisted value; nil for inserts.
	Stored *T `json:"-"`
}

// NeedsWrite reports whether the change results in a write.
func (c Change[K, T]) NeedsWrite() bool {
	return c.Kind == KindInsert || c.Kind == KindUpdate
}

// Summary provides aggregate counts for a plan.
type Summary struct {
	// Total is the number of distinct fetched entities.
	Total int `json:"total"`

	// Inserts counts entities missing in storage.
	Inserts int `json:"inserts"`

	// Updates counts entities with field discrepancies.
	Updates int `json:"updates"`

	// Unchanged counts exact matches.
	Unchanged int `json:"unchanged"`
}

// Add folds another summary into s.
func (s *Summary) Add(other Summary) {
	s.Total += other.Total
	s.Inserts += other.Inserts
	s.Updates += other.Updates
	s.Unchanged += other.Unchanged
}

// Plan contains the per-entity changes, in fetch order, and their summary.
type Plan[K comparable, T any] struct {
	Changes []Change[K, T] `json:"changes"`
	Summary Summary        `json:"summary"`
}

// Failure records an entity whose write did not succeed.
type Failure[K comparable] struct {
	Key K
	Err error
}

// ApplyResult reports what ApplyPlan did.
type ApplyResult[K comparable] struct {
	// Applied counts successful inserts and updates.
	Applied int

	// Skipped counts unchanged entities.
	Skipped int

	// Failures lists entities that could not be written.
	Failures []Failure[K]

	// Interrupted is true when the context was cancelled before every change was visited.
	Interrupted bool
}
