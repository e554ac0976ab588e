package picolog

import "github.com/pkg/errors"

var (
	// ErrStoreFull is returned by [Store.Append] when the store has reached the limit set with [WithMaxEntries].
	ErrStoreFull = errors.New("log store is full")
	// ErrTimerNotStarted is returned when the performance timer is read before it was started.
	ErrTimerNotStarted = errors.New("start time not defined")
	// ErrClosed is returned by operations on a closed [Logger].
	ErrClosed = errors.New("logger is closed")
)
