package gos

import "gfxport/kernel"

// SleepMilliseconds suspends the caller for d milliseconds, rounded to the
// kernel tick. Immediate yields the processor instead. Infinite only
// returns when the kernel stops; the caller must arrange that.
func (o *OS) SleepMilliseconds(d Delay) {
	switch class, ms := d.Classify(); class {
	case DelayPoll:
		o.sys.Yield()
	case DelayForever:
		o.sys.Sleep(kernel.TimeInfinite)
	default:
		o.sys.Sleep(o.sys.MillisecondsToTicks(ms))
	}
}

// SleepMicroseconds suspends the caller for d microseconds. Immediate is a
// no-op and does not yield. Infinite behaves as in SleepMilliseconds.
func (o *OS) SleepMicroseconds(d Delay) {
	switch class, us := d.Classify(); class {
	case DelayPoll:
	case DelayForever:
		o.sys.Sleep(kernel.TimeInfinite)
	default:
		o.sys.SleepMicroseconds(us)
	}
}
