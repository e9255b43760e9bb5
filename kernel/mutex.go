package kernel

import "sync"

// Mutex is the native mutual-exclusion lock.
type Mutex struct {
	mu sync.Mutex
}

// Lock blocks until the mutex is owned by the caller.
func (m *Mutex) Lock() { m.mu.Lock() }

// TryLock takes the mutex if it is free.
func (m *Mutex) TryLock() bool { return m.mu.TryLock() }

// Unlock releases the mutex.
func (m *Mutex) Unlock() { m.mu.Unlock() }
