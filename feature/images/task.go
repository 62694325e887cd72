package images

import (
	"fmt"

	"ygo-pipelines/feature/cards/models"
)

// State is the progress of a single card through the pool.
type State string

const (
	StatePending     State = "pending"
	StateDownloading State = "downloading"
	StateUploading   State = "uploading"
	StateRecording   State = "recording"
	StateRecorded    State = "recorded"
	StateFailed      State = "failed"
)

// transitions lists the legal successors of each state.
var transitions = map[State][]State{
	StatePending:     {StateDownloading},
	StateDownloading: {StateUploading, StateFailed},
	StateUploading:   {StateRecording, StateFailed},
	StateRecording:   {StateRecorded, StateFailed},
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateRecorded || s == StateFailed
}

// Task tracks one card. It is owned by a single worker until it reaches a
// terminal state and is handed to the results channel.
type Task struct {
	Card    models.CardImage
	Variant models.ImageVariant
	State   State
	// Bytes is the size of the uploaded object.
	Bytes int64
	// URL is the recorded public URL.
	URL string
	Err *ImageTransferError
}

func newTask(card models.CardImage, variant models.ImageVariant) *Task {
	return &Task{Card: card, Variant: variant, State: StatePending}
}

// advance moves the task to next, rejecting transitions the state machine
// does not allow.
func (t *Task) advance(next State) error {
	for _, allowed := range transitions[t.State] {
		if allowed == next {
			t.State = next
			return nil
		}
	}
	return fmt.Errorf("card %d: illegal transition %s -> %s", t.Card.ID, t.State, next)
}

// fail moves the task to StateFailed, recording the stage it failed in.
func (t *Task) fail(err error) {
	t.Err = &ImageTransferError{CardID: t.Card.ID, Stage: t.State, Err: err}
	t.State = StateFailed
}
