package stillframe

import (
	"context"
	"runtime/debug"
	"sync/atomic"
)

// Dispatcher is a presentation context: a queue of callbacks that run, in
// the order they were scheduled, on whichever single goroutine owns the
// dispatcher. A Scene owns one and drains it at the start of every Update;
// headless programs can dedicate a goroutine to Run instead.
//
// Dispatch and Close are safe from any goroutine. Drain and Run must only
// be called by the owner, and never concurrently with each other.
type Dispatcher struct {
	queue *callQueue

	// owner-only counters, reset by takeStats
	applied int
	dropped atomic.Int64
}

// NewDispatcher creates an open dispatcher with an empty queue.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{queue: newCallQueue()}
}

// Dispatch schedules fn to run on the owning goroutine and returns
// immediately. It returns false, without running fn, if fn is nil or the
// dispatcher has been closed.
func (d *Dispatcher) Dispatch(fn func()) bool {
	if fn == nil {
		return false
	}
	return d.queue.Enqueue(fn)
}

// Drain runs the callbacks that were pending when it was called and returns
// how many ran. Callbacks scheduled by those callbacks wait for the next
// Drain, so one frame never spins on self-rescheduling work.
func (d *Dispatcher) Drain() int {
	n := d.queue.Len()
	ran := 0
	for ; ran < n; ran++ {
		fn, ok := d.queue.TryDequeue()
		if !ok {
			break
		}
		d.invoke(fn)
	}
	d.applied += ran
	return ran
}

// Run dedicates the calling goroutine to the dispatcher, running callbacks
// as they arrive. It returns ctx.Err() when ctx is cancelled (closing the
// dispatcher) and nil once the dispatcher is closed and its queue is empty.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		if fn, ok := d.queue.TryDequeue(); ok {
			d.invoke(fn)
			d.applied++
			continue
		}

		select {
		case <-ctx.Done():
			d.queue.Close()
			return ctx.Err()
		case <-d.queue.Wait():
			// The signal channel is closed by Close, so this fires
			// immediately once the dispatcher shuts down.
			if d.queue.Closed() && d.queue.Len() == 0 {
				return nil
			}
		}
	}
}

// Close tears the dispatcher down. Later Dispatch calls return false;
// callbacks already queued are still run by Drain or Run.
func (d *Dispatcher) Close() {
	d.queue.Close()
}

// Closed reports whether the dispatcher has been closed.
func (d *Dispatcher) Closed() bool {
	return d.queue.Closed()
}

// Pending returns the number of callbacks waiting to run.
func (d *Dispatcher) Pending() int {
	return d.queue.Len()
}

// invoke runs fn, recovering and logging a panic so one bad callback does
// not stop the ones queued behind it.
func (d *Dispatcher) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logf("dispatch: recovered panic: %v", r)
			if globalDebug.Load() {
				logf("stack trace:\n%s", debug.Stack())
			}
		}
	}()
	fn()
}

// takeStats returns and resets the applied and dropped counters.
func (d *Dispatcher) takeStats() (applied, dropped int) {
	applied = d.applied
	d.applied = 0
	return applied, int(d.dropped.Swap(0))
}

// Slot is a single observable cell owned by a presentation context. Only
// the owning goroutine may call Get, Set and Watch; every other goroutine
// writes through Deliver.
type Slot[T any] struct {
	owner     atomic.Pointer[Dispatcher]
	value     T
	observers []func(T)
}

// NewSlot creates a slot holding initial, owned by owner. owner may be nil
// and bound later; until then deliveries are dropped.
func NewSlot[T any](owner *Dispatcher, initial T) *Slot[T] {
	s := &Slot[T]{value: initial}
	s.owner.Store(owner)
	return s
}

// Get returns the current value. Owner context only.
func (s *Slot[T]) Get() T {
	return s.value
}

// Set stores v and notifies observers in registration order. Owner context only.
func (s *Slot[T]) Set(v T) {
	s.value = v
	for _, fn := range s.observers {
		fn(v)
	}
}

// Watch registers fn to be called after every Set. Owner context only.
func (s *Slot[T]) Watch(fn func(T)) {
	s.observers = append(s.observers, fn)
}

// Owner returns the dispatcher that owns the slot, or nil.
func (s *Slot[T]) Owner() *Dispatcher {
	return s.owner.Load()
}

func (s *Slot[T]) bind(d *Dispatcher) {
	s.owner.Store(d)
}

// Deliver schedules slot.Set(value) on the slot's owning context and
// returns without waiting. Deliveries made from one goroutine are applied
// in the order they were made. Delivery is best effort: if the slot has no
// owner, or the owner has been closed, the value is silently dropped.
//
// The owner is read when Deliver is called. A value delivered before the
// slot moves to another dispatcher is still applied by the old one, so
// ordering is only kept among deliveries that reach the same dispatcher.
func Deliver[T any](slot *Slot[T], value T) {
	if slot == nil {
		return
	}
	owner := slot.owner.Load()
	if owner == nil {
		debugf("deliver: slot has no owner, dropped")
		return
	}
	if !owner.Dispatch(func() { slot.Set(value) }) {
		owner.dropped.Add(1)
		debugf("deliver: dispatcher closed, dropped")
	}
}
