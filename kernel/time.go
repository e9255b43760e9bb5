package kernel

import "fortio.org/safecast"

// Time is a duration in system ticks.
type Time uint32

const (
	// TimeImmediate polls without waiting.
	TimeImmediate Time = 0
	// TimeInfinite waits with no timeout.
	TimeInfinite Time = ^Time(0)
	// TimeMaxFinite is the longest finite wait.
	TimeMaxFinite = TimeInfinite - 1
)

// Msg is the wakeup message delivered to a waiting context.
type Msg int8

const (
	MsgOK      Msg = 0
	MsgTimeout Msg = -1
	MsgReset   Msg = -2
)

func (m Msg) String() string {
	switch m {
	case MsgOK:
		return "ok"
	case MsgTimeout:
		return "timeout"
	case MsgReset:
		return "reset"
	default:
		return "unknown"
	}
}

// MillisecondsToTicks converts ms to ticks, rounding up. The result is
// always a finite, non-zero wait for ms > 0.
func (s *System) MillisecondsToTicks(ms uint32) Time {
	return s.toTicks(uint64(ms), 1000)
}

// MicrosecondsToTicks converts us to ticks, rounding up.
func (s *System) MicrosecondsToTicks(us uint32) Time {
	return s.toTicks(uint64(us), 1_000_000)
}

func (s *System) toTicks(n, perSecond uint64) Time {
	if n == 0 {
		return TimeImmediate
	}
	ticks := (n*uint64(s.cfg.TickHz) + perSecond - 1) / perSecond
	t, err := safecast.Conv[uint32](ticks)
	if err != nil || Time(t) > TimeMaxFinite {
		return TimeMaxFinite
	}
	if t == 0 {
		return 1
	}
	return Time(t)
}
