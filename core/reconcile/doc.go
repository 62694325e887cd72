// Package reconcile provides a generic engine for reconciling a remote,
// authoritative set of entities against their persisted snapshot.
//
// # Architecture
//
// The engine consists of three parts:
//
// 1. Adapter: model-specific logic that keys entities, loads the stored
// snapshot in bulk and compares two versions field by field.
//
// 2. Plan: the classification of every fetched entity as insert, update or
// unchanged, in fetch order, with a Summary. Entities that exist only in
// storage never appear in a plan, so reconciliation never deletes.
//
// 3. ApplyPlan: a sequential writer that skips unchanged entities, isolates
// per-entity failures and stops between entities on cancellation.
//
// # Field comparison
//
// The Diff helpers (Value, Nullable, Deep) produce readable mismatch lines.
// Nullable treats null and present as different even for zero values.
//
// # Usage Example
//
//	plan, err := reconcile.Reconcile(ctx, adapter, fetched)
//	if err != nil {
//	    return err
//	}
//	result := reconcile.ApplyPlan(ctx, plan, writer)
package reconcile
