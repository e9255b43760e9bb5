package gos

import "errors"

// ErrNotLocked is the panic value for a Critical token that does not
// match the critical section currently held.
var ErrNotLocked = errors.New("gos: critical section not held")

// Critical is proof that the caller holds the kernel's global critical
// section. Only OS.Lock creates one, and it stops being valid at the
// matching OS.Unlock.
type Critical struct {
	os    *OS
	epoch uint64
}

// Lock enters the global critical section. No blocking call may be made
// until Unlock.
func (o *OS) Lock() Critical {
	o.sys.Lock()
	return Critical{os: o, epoch: o.epoch.Add(1)}
}

// Unlock leaves the critical section entered by the Lock that produced cs.
func (o *OS) Unlock(cs Critical) {
	cs.check(o)
	o.epoch.Add(1)
	o.sys.Unlock()
}

func (cs Critical) check(o *OS) {
	if cs.os != o || cs.epoch != o.epoch.Load() {
		panic(ErrNotLocked)
	}
}
