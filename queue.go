package stillframe

import "sync"

// callQueue is a thread-safe, unbounded FIFO of callbacks waiting to run on
// the presentation context.
//
// The signal channel (buffered, size 1) lets a dedicated loop wait with
// select alongside ctx.Done; it is closed by Close to wake any waiter.
type callQueue struct {
	mu     sync.Mutex
	calls  []func()
	closed bool
	signal chan struct{}
}

func newCallQueue() *callQueue {
	return &callQueue{
		calls:  make([]func(), 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends fn. Safe from any goroutine. Returns false if the queue is closed.
func (q *callQueue) Enqueue(fn func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.calls = append(q.calls, fn)

	// Non-blocking: the buffer of 1 coalesces multiple signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue removes and returns the front callback without blocking.
func (q *callQueue) TryDequeue() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.calls) == 0 {
		return nil, false
	}
	fn := q.calls[0]
	// Nil out the slot so the closure (and the value it captured) can be collected.
	q.calls[0] = nil
	if len(q.calls) == 1 {
		q.calls = q.calls[:0]
	} else {
		q.calls = q.calls[1:]
	}
	return fn, true
}

// Wait returns a channel that signals when callbacks may be available.
func (q *callQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the number of pending callbacks.
func (q *callQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.calls)
}

// Close rejects further callbacks and wakes any waiter. Pending callbacks
// stay queued and can still be dequeued.
func (q *callQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}

// Closed reports whether Close has been called.
func (q *callQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
