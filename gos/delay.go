package gos

import (
	"math"
	"time"

	"fortio.org/safecast"
)

// Delay is a wait bound in milliseconds (microseconds for
// SleepMicroseconds). The extremes of the range are sentinels.
type Delay uint32

const (
	// Immediate means do not block at all.
	Immediate Delay = 0
	// Infinite means block with no timeout.
	Infinite Delay = math.MaxUint32
	// MaxFinite is the longest finite delay.
	MaxFinite = Infinite - 1
)

// DelayClass is the interpretation of a Delay.
type DelayClass uint8

const (
	DelayPoll DelayClass = iota
	DelayForever
	DelayFinite
)

func (c DelayClass) String() string {
	switch c {
	case DelayPoll:
		return "poll"
	case DelayForever:
		return "forever"
	case DelayFinite:
		return "finite"
	default:
		return "unknown"
	}
}

// Classify maps d to exactly one class. n is the finite duration and is
// zero for the two sentinels.
func (d Delay) Classify() (class DelayClass, n uint32) {
	switch d {
	case Immediate:
		return DelayPoll, 0
	case Infinite:
		return DelayForever, 0
	default:
		return DelayFinite, uint32(d)
	}
}

// Milliseconds returns a finite delay of ms milliseconds. Non-positive
// values give Immediate; values past the range saturate at MaxFinite.
func Milliseconds(ms int) Delay {
	if ms <= 0 {
		return Immediate
	}
	v, err := safecast.Conv[uint32](ms)
	if err != nil || Delay(v) > MaxFinite {
		return MaxFinite
	}
	return Delay(v)
}

// FromDuration converts d to a millisecond delay, rounding up so a short
// positive duration still waits. Negative or zero durations give Immediate.
func FromDuration(d time.Duration) Delay {
	if d <= 0 {
		return Immediate
	}
	ms := (d + time.Millisecond - 1) / time.Millisecond
	v, err := safecast.Conv[uint32](int64(ms))
	if err != nil || Delay(v) > MaxFinite {
		return MaxFinite
	}
	return Delay(v)
}

func (d Delay) String() string {
	switch d {
	case Immediate:
		return "immediate"
	case Infinite:
		return "infinite"
	default:
		return (time.Duration(d) * time.Millisecond).String()
	}
}
