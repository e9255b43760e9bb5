package gos

import (
	"fmt"

	"gfxport/kernel"
)

// port adapts one kernel API generation to the calls the layer makes.
type port interface {
	name() string
	semInit(sp *kernel.Semaphore, n int32)
	// semWaitTimeout reports whether a unit was taken.
	semWaitTimeout(sp *kernel.Semaphore, t kernel.Time) bool
	// semCountI reads the raw counter; the lock must be held.
	semCountI(sp *kernel.Semaphore) int32
	createFromHeap(size int, prio kernel.Priority, fn kernel.ThreadFunc, arg any) *kernel.Thread
	createStatic(wa []byte, prio kernel.Priority, fn kernel.ThreadFunc, arg any) *kernel.Thread
}

func selectPort(sys *kernel.System) (port, error) {
	switch major := sys.Major(); {
	case major >= kernel.MinMajor && major <= 3:
		return legacyPort{sys: sys}, nil
	case major >= 4 && major <= kernel.MaxMajor:
		return currentPort{sys: sys}, nil
	default:
		return nil, fmt.Errorf("%w %d", ErrUnsupportedKernel, major)
	}
}
