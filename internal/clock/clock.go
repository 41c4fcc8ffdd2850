// Package clock adapts github.com/jonboulle/clockwork clocks to api.Clock:
// the real clock for production and a fake one for deterministic tests.
package clock

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/petrijr/draftflow/pkg/api"
)

type adapter struct {
	clockwork.Clock
}

func (a adapter) AfterFunc(d time.Duration, f func()) api.Timer {
	return a.Clock.AfterFunc(d, f)
}

// Adapt exposes c as an api.Clock.
func Adapt(c clockwork.Clock) api.Clock {
	return adapter{Clock: c}
}

// System returns the api.Clock backed by the time package.
func System() api.Clock {
	return Adapt(clockwork.NewRealClock())
}

// Manual is an api.Clock whose time only moves when Advance is called.
// Timers that come due run their callback on a new goroutine, as
// time.AfterFunc does.
type Manual struct {
	*clockwork.FakeClock
}

var _ api.Clock = (*Manual)(nil)

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{FakeClock: clockwork.NewFakeClockAt(start)}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) api.Timer {
	return m.FakeClock.AfterFunc(d, f)
}

// WaitPending blocks until exactly n timers are armed, or gives up after
// timeout.
func (m *Manual) WaitPending(n int, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return m.BlockUntilContext(ctx, n)
}
