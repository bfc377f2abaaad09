package threadutil

import (
	"reflect"
	"testing"
)

func TestParseCPUListRanges(t *testing.T) {
	got := ParseCPUList("2-4,7,10-11")
	want := []int{2, 3, 4, 7, 10, 11}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseCPUList = %v, want %v", got, want)
	}
}

func TestParseCPUListMalformedInputYieldsEmpty(t *testing.T) {
	for _, s := range []string{"1,bad,5", "1,3-2,5"} {
		if got := ParseCPUList(s); len(got) != 0 {
			t.Fatalf("ParseCPUList(%q) = %v, want empty", s, got)
		}
	}
}

func TestParseCPUListEmpty(t *testing.T) {
	if got := ParseCPUList(""); len(got) != 0 {
		t.Fatalf("ParseCPUList(\"\") = %v, want empty", got)
	}
}

func TestNumCPUPositive(t *testing.T) {
	if NumCPU() < 1 {
		t.Fatal("NumCPU() should be at least 1")
	}
}

func TestPinOutOfRangeFails(t *testing.T) {
	if Pin(-1) {
		t.Fatal("Pin(-1) should fail")
	}
	if Pin(NumCPU() + 1000) {
		t.Fatal("Pin with an absurd cpu id should fail")
	}
}

func TestSetRealtimeFIFOValidatesPriority(t *testing.T) {
	if SetRealtimeFIFO(0) {
		t.Fatal("priority 0 should be rejected")
	}
	if SetRealtimeFIFO(100) {
		t.Fatal("priority 100 should be rejected")
	}
}

func TestSpinWaitDoesNotPanic(t *testing.T) {
	SpinWait(100)
}
