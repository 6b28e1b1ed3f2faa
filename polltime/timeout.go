// Package polltime converts between Go durations and the millisecond
// timeout accepted by poll(2).
package polltime

import (
	"math"
	"time"
)

// Timeout is either Never (block indefinitely) or After a bounded
// duration. Durations exceeding poll(2)'s millisecond-integer capacity
// are saturated, not truncated or overflowed.
type Timeout struct {
	never bool
	d     time.Duration
}

// Never blocks the wait until a source becomes ready or it is woken.
var Never = Timeout{never: true}

// After returns a Timeout bounded by d.
func After(d time.Duration) Timeout { return Timeout{d: d} }

// FromSeconds returns a Timeout of n seconds.
func FromSeconds(n uint32) Timeout { return After(time.Duration(n) * time.Second) }

// FromMillis returns a Timeout of n milliseconds.
func FromMillis(n uint32) Timeout { return After(time.Duration(n) * time.Millisecond) }

// FromOptional returns Never if d is nil, else After(*d).
func FromOptional(d *time.Duration) Timeout {
	if d == nil {
		return Never
	}
	return After(*d)
}

// Millis converts the Timeout to the millisecond integer passed to
// poll(2): -1 for Never, otherwise min(d.Milliseconds(), MaxInt32),
// with negative durations clamped to 0.
func (t Timeout) Millis() int {
	if t.never {
		return -1
	}
	ms := t.d.Milliseconds()
	if ms > math.MaxInt32 {
		return math.MaxInt32
	}
	if ms < 0 {
		return 0
	}
	return int(ms)
}

// IsNever reports whether the timeout blocks indefinitely.
func (t Timeout) IsNever() bool { return t.never }
