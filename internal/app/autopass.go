package app

import "time"

// AutoPassTimer is the countdown armed when a play is detected as unbeatable.
// It is a plain value owned by whichever component started it; remaining time
// is always recomputed from StartedAt and Duration so a reconnecting client
// or a restarted authority derives the identical deadline from persisted
// state rather than from a live in-process countdown.
type AutoPassTimer struct {
	StartedAt time.Time
	Duration  time.Duration
}

// NewAutoPassTimer arms a countdown at the given instant.
func NewAutoPassTimer(startedAt time.Time, duration time.Duration) AutoPassTimer {
	return AutoPassTimer{StartedAt: startedAt, Duration: duration}
}

// ResumeAutoPassTimer reconstructs a countdown from persisted wire values
// (unix milliseconds + duration milliseconds).
func ResumeAutoPassTimer(startedAtMs, durationMs int64) AutoPassTimer {
	return AutoPassTimer{
		StartedAt: time.UnixMilli(startedAtMs),
		Duration:  time.Duration(durationMs) * time.Millisecond,
	}
}

// Remaining returns the time left on the countdown, clamped at zero.
func (t AutoPassTimer) Remaining(now time.Time) time.Duration {
	left := t.Duration - now.Sub(t.StartedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the countdown has run out.
func (t AutoPassTimer) Expired(now time.Time) bool {
	return t.Remaining(now) == 0
}

// StartedAtMs returns the persisted wire representation of the start instant.
func (t AutoPassTimer) StartedAtMs() int64 {
	return t.StartedAt.UnixMilli()
}

// DurationMs returns the persisted wire representation of the duration.
func (t AutoPassTimer) DurationMs() int64 {
	return t.Duration.Milliseconds()
}
