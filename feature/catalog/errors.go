package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// TransientFetchError is a network or rate-limit failure worth retrying.
type TransientFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransientFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transient fetch error: %s returned %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transient fetch error: %s: %v", e.URL, e.Err)
}

func (e *TransientFetchError) Unwrap() error   { return e.Err }
func (e *TransientFetchError) Temporary() bool { return true }

// FatalFetchError is a malformed or rejected response. It aborts the run.
type FatalFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FatalFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fatal fetch error: %s returned %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fatal fetch error: %s: %v", e.URL, e.Err)
}

func (e *FatalFetchError) Unwrap() error   { return e.Err }
func (e *FatalFetchError) Temporary() bool { return false }

// RecordError is a single catalog entry that could not be decoded. Unlike the
// fetch errors it does not end a sequence; the entry is skipped.
type RecordError struct {
	// ID is the card id when it could be read, 0 otherwise.
	ID  int
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed card record %d: %v", e.ID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// IsRecordError reports whether err only affects one entry.
func IsRecordError(err error) bool {
	var rec *RecordError
	return errors.As(err, &rec)
}

// isTransientStatus lists the statuses retried by the HTTP layer.
func isTransientStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
