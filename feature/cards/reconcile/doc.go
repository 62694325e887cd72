// Package reconcile adapts the generic reconciliation engine to cards.
//
// A card is reconciled as a models.Bundle: its metadata row, its translations
// and its banlist entry. CardAdapter compares bundles field by field, and
// Prepare turns a planned change into the minimal store.BundleWrite, counting
// the translation and banlist rows it touches.
package reconcile
