package reconcile

import (
	"context"
	"fmt"
)

// Reconcile loads the stored snapshot for the fetched keys and builds the plan.
func Reconcile[K comparable, T any](ctx context.Context, adapter Adapter[K, T], fetched []T) (*Plan[K, T], error) {
	keys := make([]K, 0, len(fetched))
	for _, item := range fetched {
		keys = append(keys, adapter.Key(item))
	}

	stored, err := adapter.LoadStored(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load stored snapshot: %w", adapter.Name(), err)
	}

	return BuildPlan(adapter, fetched, stored), nil
}

// BuildPlan classifies every fetched entity against the stored snapshot.
// Stored entities that were not fetched are ignored; reconciliation never deletes.
// A key fetched twice keeps its first position and its last value.
func BuildPlan[K comparable, T any](adapter Adapter[K, T], fetched []T, stored map[K]T) *Plan[K, T] {
	plan := &Plan[K, T]{Changes: make([]Change[K, T], 0, len(fetched))}
	position := make(map[K]int, len(fetched))

	for _, item := range fetched {
		key := adapter.Key(item)
		change := classify(adapter, key, item, stored)

		if i, seen := position[key]; seen {
			plan.Changes[i] = change
			continue
		}
		position[key] = len(plan.Changes)
		plan.Changes = append(plan.Changes, change)
	}

	for _, c := range plan.Changes {
		plan.Summary.Total++
		switch c.Kind {
		case KindInsert:
			plan.Summary.Inserts++
		case KindUpdate:
			plan.Summary.Updates++
		case KindUnchanged:
			plan.Summary.Unchanged++
		}
	}

	return plan
}

func classify[K comparable, T any](adapter Adapter[K, T], key K, item T, stored map[K]T) Change[K, T] {
	current, ok := stored[key]
	if !ok {
		return Change[K, T]{Key: key, Kind: KindInsert, Fetched: item}
	}

	change := Change[K, T]{Key: key, Fetched: item, Stored: &current}
	if diffs := adapter.CompareFields(item, current); len(diffs) > 0 {
		change.Kind = KindUpdate
		change.Fields = diffs
	} else {
		change.Kind = KindUnchanged
	}
	return change
}
