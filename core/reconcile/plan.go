package reconcile

import "context"

// ApplyPlan writes every insert and update of the plan, in plan order, through
// the applier. A failing entity is recorded and the loop moves on; unchanged
// entities are skipped without a call. Cancellation is checked between
// entities only, so an in-flight Apply always runs to completion; entities
// after it are neither applied nor counted.
func ApplyPlan[K comparable, T any](ctx context.Context, plan *Plan[K, T], applier Applier[K, T]) ApplyResult[K] {
	var result ApplyResult[K]

	for _, change := range plan.Changes {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}

		if !change.NeedsWrite() {
			result.Skipped++
			continue
		}

		if err := applier.Apply(ctx, change); err != nil {
			result.Failures = append(result.Failures, Failure[K]{Key: change.Key, Err: err})
			continue
		}
		result.Applied++
	}

	return result
}
