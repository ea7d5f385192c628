package domain

import "time"

// SessionClock tracks the running process. startedAt marks the session shown to
// the user; baseline marks the last fold into the durable total and only moves
// forward.
type SessionClock struct {
	startedAt time.Time
	baseline  time.Time
}

func NewSessionClock(now time.Time) SessionClock {
	return SessionClock{startedAt: now, baseline: now}
}

// Elapsed is the unfolded time since the baseline, never negative.
func (c SessionClock) Elapsed(now time.Time) int64 {
	return nonNegativeMs(now.Sub(c.baseline))
}

// SessionTime is the time since the process session started.
func (c SessionClock) SessionTime(now time.Time) int64 {
	return nonNegativeMs(now.Sub(c.startedAt))
}

// Advance moves the baseline forward by the folded milliseconds. Whatever was
// not folded stays in the window for the next fold.
func (c *SessionClock) Advance(foldedMs int64) {
	if foldedMs <= 0 {
		return
	}
	c.baseline = c.baseline.Add(time.Duration(foldedMs) * time.Millisecond)
}

func (c SessionClock) StartedAt() time.Time {
	return c.startedAt
}

func (c SessionClock) Baseline() time.Time {
	return c.baseline
}

func nonNegativeMs(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return d.Milliseconds()
}
