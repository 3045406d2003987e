package stillframe

import (
	"sync"
	"testing"
)

func TestCallQueueFIFO(t *testing.T) {
	q := newCallQueue()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		if !q.Enqueue(func() { got = append(got, i) }) {
			t.Fatalf("Enqueue(%d) = false on open queue", i)
		}
	}
	if q.Len() != 5 {
		t.Errorf("Len = %d, want 5", q.Len())
	}
	for {
		fn, ok := q.TryDequeue()
		if !ok {
			break
		}
		fn()
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("order = %v, want 0..4", got)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len after draining = %d, want 0", q.Len())
	}
}

func TestCallQueueClose(t *testing.T) {
	q := newCallQueue()
	q.Enqueue(func() {})
	q.Close()

	if !q.Closed() {
		t.Error("Closed should be true")
	}
	if q.Enqueue(func() {}) {
		t.Error("Enqueue after Close should return false")
	}
	if _, ok := q.TryDequeue(); !ok {
		t.Error("callbacks queued before Close should still dequeue")
	}

	// Wait's channel is closed, so receiving never blocks.
	<-q.Wait()

	// Close is idempotent.
	q.Close()
}

func TestCallQueueSignalCoalesces(t *testing.T) {
	q := newCallQueue()
	for i := 0; i < 3; i++ {
		q.Enqueue(func() {})
	}
	select {
	case <-q.Wait():
	default:
		t.Fatal("expected a pending signal")
	}
	select {
	case <-q.Wait():
		t.Error("signals should coalesce into one")
	default:
	}
}

func TestCallQueueConcurrentEnqueue(t *testing.T) {
	q := newCallQueue()
	const writers, per = 8, 100

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				q.Enqueue(func() {})
			}
		}()
	}
	wg.Wait()

	if q.Len() != writers*per {
		t.Errorf("Len = %d, want %d", q.Len(), writers*per)
	}
}
