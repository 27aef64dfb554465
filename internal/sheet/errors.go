package sheet

import (
	"errors"
	"fmt"
)

// ErrInvalidHandle is returned for handles below 1. No request is sent.
var ErrInvalidHandle = errors.New("invalid row handle")

// ErrDecode wraps ReadAll payloads that are not a 2D JSON array.
var ErrDecode = errors.New("invalid sheet payload")

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Op         string
	Collection string
	Code       int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("sheet %s %s: status %d", e.Op, e.Collection, e.Code)
	}
	return fmt.Sprintf("sheet %s %s: status %d: %s", e.Op, e.Collection, e.Code, e.Body)
}

// StaleHandleError reports that a record's handle no longer addresses the
// row it was read from.
type StaleHandleError struct {
	Collection string
	Handle     int
	Reason     string
}

func (e *StaleHandleError) Error() string {
	return fmt.Sprintf("stale handle %d in %s: %s", e.Handle, e.Collection, e.Reason)
}

// IsStale reports whether err is (or wraps) a *StaleHandleError.
func IsStale(err error) bool {
	var stale *StaleHandleError
	return errors.As(err, &stale)
}
