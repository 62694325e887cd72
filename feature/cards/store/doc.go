// Package store is the relational side of the storage gateway.
//
// It reads bulk snapshots of stored cards for reconciliation and performs the
// writes of the metadata and image syncs:
//   - WriteBundle upserts a card's metadata, translations and banlist entry in
//     one transaction, touching only catalog-owned columns.
//   - UpsertBanlist writes the merged banlist wholesale.
//   - PendingImages / RecordImageURL drive the image sync with keyset paging.
//
// Every write failure is a StorageWriteError carrying the card id.
package store
