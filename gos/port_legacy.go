package gos

import "gfxport/kernel"

// legacyPort drives the 2.x/3.x kernel API.
type legacyPort struct {
	sys *kernel.System
}

func (p legacyPort) name() string { return "legacy (2.x/3.x)" }

// semInit uses SemInit on 2.x; 3.x already has SemObjectInit.
func (p legacyPort) semInit(sp *kernel.Semaphore, n int32) {
	if p.sys.Major() <= 2 {
		p.sys.SemInit(sp, n)
		return
	}
	p.sys.SemObjectInit(sp, n)
}

func (p legacyPort) semWaitTimeout(sp *kernel.Semaphore, t kernel.Time) bool {
	return sp.WaitTimeout(t) == kernel.RdyOK
}

func (p legacyPort) semCountI(sp *kernel.Semaphore) int32 {
	return sp.SCnt()
}

func (p legacyPort) createFromHeap(size int, prio kernel.Priority, fn kernel.ThreadFunc, arg any) *kernel.Thread {
	return p.sys.CreateFromHeap(nil, size, prio, fn, arg)
}

func (p legacyPort) createStatic(wa []byte, prio kernel.Priority, fn kernel.ThreadFunc, arg any) *kernel.Thread {
	return p.sys.CreateStatic(wa, prio, fn, arg)
}
