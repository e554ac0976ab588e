package picolog

import "time"

// A Timer holds a single in-flight measurement.
// Reading the elapsed time does not disarm it.
type Timer struct {
	start time.Time
}

// Start arms the timer, replacing any previous start.
func (t *Timer) Start() {
	t.start = now()
}

// Started reports whether the timer was ever armed.
func (t *Timer) Started() bool {
	return !t.start.IsZero()
}

// Elapsed returns the time since the timer was armed, or [ErrTimerNotStarted].
func (t *Timer) Elapsed() (time.Duration, error) {
	if !t.Started() {
		return 0, ErrTimerNotStarted
	}
	return now().Sub(t.start), nil
}
