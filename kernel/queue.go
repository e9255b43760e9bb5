package kernel

// waiter is a context queued on a semaphore.
type waiter struct {
	next, prev *waiter
	queued     bool
	wake       chan Msg
}

// threadQueue is a FIFO of waiters. Guarded by the system lock.
type threadQueue struct {
	head, tail *waiter
	n          int
}

func (q *threadQueue) push(w *waiter) {
	w.prev = q.tail
	w.next = nil
	if q.tail != nil {
		q.tail.next = w
	} else {
		q.head = w
	}
	q.tail = w
	w.queued = true
	q.n++
}

func (q *threadQueue) pop() *waiter {
	w := q.head
	if w == nil {
		return nil
	}
	q.unlink(w)
	return w
}

// remove unlinks w and reports whether it was still queued.
func (q *threadQueue) remove(w *waiter) bool {
	if !w.queued {
		return false
	}
	q.unlink(w)
	return true
}

func (q *threadQueue) unlink(w *waiter) {
	if w.prev != nil {
		w.prev.next = w.next
	} else {
		q.head = w.next
	}
	if w.next != nil {
		w.next.prev = w.prev
	} else {
		q.tail = w.prev
	}
	w.next, w.prev = nil, nil
	w.queued = false
	q.n--
}

func (q *threadQueue) len() int { return q.n }
