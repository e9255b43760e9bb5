package gos

import "gfxport/kernel"

// threadName is given to every heap thread on kernels that name threads.
const threadName = "gfx"

// currentPort drives the 4.x/5.x kernel API.
type currentPort struct {
	sys *kernel.System
}

func (p currentPort) name() string { return "current (4.x/5.x)" }

func (p currentPort) semInit(sp *kernel.Semaphore, n int32) {
	p.sys.SemObjectInit(sp, n)
}

func (p currentPort) semWaitTimeout(sp *kernel.Semaphore, t kernel.Time) bool {
	return sp.WaitTimeout(t) == kernel.MsgOK
}

func (p currentPort) semCountI(sp *kernel.Semaphore) int32 {
	return sp.GetCounterI()
}

func (p currentPort) createFromHeap(size int, prio kernel.Priority, fn kernel.ThreadFunc, arg any) *kernel.Thread {
	return p.sys.CreateFromHeapNamed(nil, size, threadName, prio, fn, arg)
}

func (p currentPort) createStatic(wa []byte, prio kernel.Priority, fn kernel.ThreadFunc, arg any) *kernel.Thread {
	return p.sys.CreateStatic(wa, prio, fn, arg)
}
