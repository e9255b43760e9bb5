//go:build linux

package kernel

import (
	"time"

	"golang.org/x/sys/unix"
)

// sleepPrecise sleeps below tick granularity with nanosleep(2), resuming
// after signal interruptions.
func sleepPrecise(d time.Duration) {
	ts := unix.NsecToTimespec(d.Nanoseconds())
	var rem unix.Timespec
	for {
		err := unix.Nanosleep(&ts, &rem)
		if err != unix.EINTR {
			return
		}
		ts = rem
	}
}
