package images

import "fmt"

// ImageTransferError is a card whose image could not be downloaded, uploaded
// or recorded. It never aborts the pool.
type ImageTransferError struct {
	CardID int
	// Stage is the state the task was in when it failed.
	Stage State
	Err   error
}

func (e *ImageTransferError) Error() string {
	return fmt.Sprintf("image transfer error: card %d: %s: %v", e.CardID, e.Stage, e.Err)
}

func (e *ImageTransferError) Unwrap() error { return e.Err }
