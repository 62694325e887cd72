// Package sync is the metadata writer. It reads the whole catalog first, then
// reconciles it chunk by chunk against the stored bundles and writes the
// inserts and updates card by card, each card in its own retried transaction.
// It also performs the banlist-only sync.
package sync
