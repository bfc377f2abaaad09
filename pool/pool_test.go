// ============================================================================
// OBJECT POOL CORRECTNESS VALIDATION SUITE
// ============================================================================
//
// Test categories:
//   - Constructor validation: capacity enforcement, huge-page flag when not requested
//   - Basic operations: Get/Put round trip, slot reuse
//   - Exhaustion: pool empty behavior, refill after Put
//   - Concurrency: many goroutines racing Get/Put without double-issue

package pool

import (
	"sync"
	"testing"
)

func TestNewPanicsOnInvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("New(%d) should panic", c)
				}
			}()
			_ = New(c, false)
		}()
	}
}

func TestGetPutRoundTrip(t *testing.T) {
	p := New(4, false)

	slot, idx, ok := p.Get()
	if !ok {
		t.Fatal("Get should succeed on fresh pool")
	}
	slot.SequenceNumber = 42
	if p.Slot(idx).SequenceNumber != 42 {
		t.Fatal("Slot(idx) should alias the pointer returned by Get")
	}
	p.Put(idx)

	if p.Available() != 4 {
		t.Fatalf("Available() = %d, want 4 after Put", p.Available())
	}
}

func TestExhaustion(t *testing.T) {
	p := New(2, false)

	_, idx0, ok := p.Get()
	if !ok {
		t.Fatal("first Get should succeed")
	}
	_, idx1, ok := p.Get()
	if !ok {
		t.Fatal("second Get should succeed")
	}
	if _, _, ok := p.Get(); ok {
		t.Fatal("third Get should fail on exhausted pool")
	}

	p.Put(idx0)
	if _, _, ok := p.Get(); !ok {
		t.Fatal("Get after Put should succeed")
	}
	p.Put(idx1)
}

func TestSlotZeroedOnGet(t *testing.T) {
	p := New(1, false)

	slot, idx, _ := p.Get()
	slot.SequenceNumber = 99
	slot.Price = 123
	p.Put(idx)

	slot2, idx2, ok := p.Get()
	if !ok {
		t.Fatal("Get should succeed")
	}
	if idx2 != idx {
		t.Fatalf("expected slot reuse on a 1-slot pool: got idx %d, want %d", idx2, idx)
	}
	if slot2.SequenceNumber != 0 || slot2.Price != 0 {
		t.Fatal("expected slot to be zeroed on reacquire")
	}
}

func TestConcurrentGetPutNoDoubleIssue(t *testing.T) {
	const capacity = 64
	const workers = 16
	const rounds = 2000

	p := New(capacity, false)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				slot, idx, ok := p.Get()
				if !ok {
					continue
				}
				slot.SequenceNumber = uint64(idx)
				if slot.SequenceNumber != uint64(idx) {
					t.Errorf("slot corrupted mid-hold: idx=%d seq=%d", idx, slot.SequenceNumber)
				}
				p.Put(idx)
			}
		}()
	}
	wg.Wait()

	if avail := p.Available(); avail != capacity {
		t.Fatalf("Available() = %d after drain, want %d — slot leaked or double-issued", avail, capacity)
	}
}

func TestCapacityAndHugePageFlag(t *testing.T) {
	p := New(128, false)
	if p.Capacity() != 128 {
		t.Fatalf("Capacity() = %d, want 128", p.Capacity())
	}
	if p.UsingHugePages() {
		t.Fatal("expected UsingHugePages() false when not requested")
	}
}
