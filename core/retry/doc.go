// Package retry implements exponential backoff for transient failures.
//
// Errors opt into retries by implementing Temporary() bool; the catalog,
// store and image errors all do. The delay after attempt n is
// BaseDelay * Multiplier^(n-1), capped at MaxDelay.
package retry
