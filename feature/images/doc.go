// Package images copies card art from the remote image host into the object
// store and records the public URL on each card.
//
// A run is a fixed-size worker pool fed by one dispatcher through a bounded
// queue. Each card is a Task that moves through
//
//	pending -> downloading -> uploading -> recording -> recorded
//
// or ends in failed, carrying an ImageTransferError. Failures are counted in
// the Summary and never stop the pool.
package images
