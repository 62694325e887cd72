package store

import "fmt"

// StorageWriteError is a failed database write for one card. It is retried
// per card up to the configured bound before the card is reported as failed.
type StorageWriteError struct {
	CardID int
	Op     string
	Err    error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("storage write error: card %d: %s: %v", e.CardID, e.Op, e.Err)
}

func (e *StorageWriteError) Unwrap() error   { return e.Err }
func (e *StorageWriteError) Temporary() bool { return true }
