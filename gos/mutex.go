package gos

import "gfxport/kernel"

// Mutex is a non-recursive lock for data shared between threads. Unlike
// the critical section it may be held across blocking calls.
type Mutex struct {
	m kernel.Mutex
}

// NewMutex returns an unlocked mutex.
func NewMutex() *Mutex { return &Mutex{} }

// Enter locks m, blocking until it is available.
func (m *Mutex) Enter() { m.m.Lock() }

// TryEnter locks m if it is free and reports whether it did.
func (m *Mutex) TryEnter() bool { return m.m.TryLock() }

// Exit unlocks m.
func (m *Mutex) Exit() { m.m.Unlock() }

// Destroy releases m. It must not be held.
func (m *Mutex) Destroy() {}
