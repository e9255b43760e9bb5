//go:build !linux

package kernel

import "time"

func sleepPrecise(d time.Duration) {
	time.Sleep(d)
}
