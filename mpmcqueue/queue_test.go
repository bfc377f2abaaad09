// ============================================================================
// MPMC EVENT QUEUE CORRECTNESS VALIDATION SUITE
// ============================================================================

package mpmcqueue

import (
	"sync"
	"testing"

	"github.com/nanofeed/marketfeed/event"
)

func testEvent(seed uint64) event.Event {
	return event.Event{SequenceNumber: seed, ExchangeTimestamp: seed}
}

func TestNewPanicsOnInvalidCapacity(t *testing.T) {
	for _, n := range []int{0, 1, -5} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("New(%d) should panic", n)
				}
			}()
			_ = New(n)
		}()
	}
}

func TestEnqueueDequeueRoundTrip(t *testing.T) {
	q := New(16)
	if !q.Empty() {
		t.Fatal("fresh queue should be empty")
	}

	val := testEvent(7)
	if !q.Enqueue(&val) {
		t.Fatal("enqueue should succeed")
	}
	if q.Empty() {
		t.Fatal("queue should not be empty after enqueue")
	}

	var got event.Event
	if !q.Dequeue(&got) {
		t.Fatal("dequeue should succeed")
	}
	if got != val {
		t.Fatalf("got %+v, want %+v", got, val)
	}
	if !q.Empty() {
		t.Fatal("queue should be empty after dequeue")
	}
}

func TestDequeueEmptyReturnsFalse(t *testing.T) {
	q := New(4)
	var out event.Event
	if q.Dequeue(&out) {
		t.Fatal("dequeue on empty queue should fail")
	}
}

func TestFIFOOrdering(t *testing.T) {
	q := New(64)
	for i := uint64(0); i < 50; i++ {
		val := testEvent(i)
		if !q.Enqueue(&val) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	for i := uint64(0); i < 50; i++ {
		var got event.Event
		if !q.Dequeue(&got) {
			t.Fatalf("dequeue %d failed", i)
		}
		if got.SequenceNumber != i {
			t.Fatalf("FIFO violated: got seq %d at position %d", got.SequenceNumber, i)
		}
	}
}

func TestArenaExhaustion(t *testing.T) {
	q := New(5) // dummy + 4 usable nodes
	val := testEvent(1)
	enqueued := 0
	for i := 0; i < 10; i++ {
		if q.Enqueue(&val) {
			enqueued++
		} else {
			break
		}
	}
	if enqueued != 4 {
		t.Fatalf("expected exactly 4 successful enqueues on a 5-node arena, got %d", enqueued)
	}
}

func TestDequeueBulk(t *testing.T) {
	q := New(32)
	for i := uint64(0); i < 10; i++ {
		val := testEvent(i)
		q.Enqueue(&val)
	}
	out := make([]event.Event, 20)
	n := q.DequeueBulk(out)
	if n != 10 {
		t.Fatalf("DequeueBulk returned %d, want 10", n)
	}
}

func TestConcurrentProducersConsumers(t *testing.T) {
	const producers = 8
	const consumers = 4
	const perProducer = 500
	const capacity = producers*perProducer + 8

	q := New(capacity)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base uint64) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				val := testEvent(base + uint64(i))
				for !q.Enqueue(&val) {
				}
			}
		}(uint64(p * perProducer))
	}

	var received sync.Map
	var count int64
	var countMu sync.Mutex
	var consumerWg sync.WaitGroup
	stop := make(chan struct{})

	for c := 0; c < consumers; c++ {
		consumerWg.Add(1)
		go func() {
			defer consumerWg.Done()
			var ev event.Event
			for {
				select {
				case <-stop:
					for q.Dequeue(&ev) {
						received.Store(ev.SequenceNumber, true)
						countMu.Lock()
						count++
						countMu.Unlock()
					}
					return
				default:
					if q.Dequeue(&ev) {
						received.Store(ev.SequenceNumber, true)
						countMu.Lock()
						count++
						countMu.Unlock()
					}
				}
			}
		}()
	}

	wg.Wait()
	close(stop)
	consumerWg.Wait()

	countMu.Lock()
	total := count
	countMu.Unlock()

	if total != producers*perProducer {
		t.Fatalf("received %d items, want %d", total, producers*perProducer)
	}
	for p := 0; p < producers; p++ {
		for i := 0; i < perProducer; i++ {
			if _, ok := received.Load(uint64(p*perProducer + i)); !ok {
				t.Fatalf("missing sequence %d", p*perProducer+i)
			}
		}
	}
}
