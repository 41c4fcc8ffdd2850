package api

import "time"

// Clock is the wall-clock source used for save timestamps, staleness checks
// and the autosave debounce timer.
type Clock interface {
	Now() time.Time
	// AfterFunc calls f in its own goroutine once d has elapsed, unless the
	// returned Timer is stopped first.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable one-shot timer returned by Clock.AfterFunc.
type Timer interface {
	// Stop prevents the timer from firing. It reports whether the call
	// stopped the timer; false means it had already fired or been stopped.
	Stop() bool
}
