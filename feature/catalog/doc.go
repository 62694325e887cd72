// Package catalog reads the remote YGOPRODeck card catalog.
//
// Cards returns a lazy iter.Seq2 over the catalog. The response's "data"
// array is stream-decoded so records reach the caller while the download is
// still in progress. Translations for the configured languages are fetched
// first and attached to each record.
//
// Banlist fetches the TCG and OCG lists concurrently and merges them. Image
// downloads full or cropped card art.
//
// # Errors
//
//   - TransientFetchError: network failures, timeouts, 408/429/500/502/503/504.
//     Retried with the configured backoff before surfacing.
//   - FatalFetchError: other 4xx, non-JSON or structurally malformed payloads.
//     Never retried; callers abort the run.
//
// A 400 reporting "No card matching your query" (an unknown card set) is an
// empty result, not an error.
package catalog
