// ============================================================================
// LATENCY HISTOGRAM CORRECTNESS VALIDATION SUITE
// ============================================================================

package histogram

import (
	"math/rand"
	"testing"
)

func TestBucketForBoundaries(t *testing.T) {
	cases := []struct {
		ns   uint64
		want int
	}{
		{0, 0},
		{999, 0},
		{1000, 1},   // 1us -> log2(1)+1 = 1
		{1999, 1},
		{2000, 2},   // 2us -> log2(2)+1 = 2
		{3999, 2},
		{4000, 3},
	}
	for _, c := range cases {
		if got := bucketFor(c.ns); got != c.want {
			t.Errorf("bucketFor(%d) = %d, want %d", c.ns, got, c.want)
		}
	}
}

func TestBucketForClampsAtMax(t *testing.T) {
	if got := bucketFor(1 << 40); got != NumBuckets-1 {
		t.Errorf("bucketFor(huge) = %d, want %d", got, NumBuckets-1)
	}
}

func TestRecordAndCount(t *testing.T) {
	h := New()
	for i := uint64(1); i <= 100; i++ {
		h.Record(i * 1000)
	}
	if h.Count() != 100 {
		t.Fatalf("Count() = %d, want 100", h.Count())
	}
}

func TestMinMax(t *testing.T) {
	h := New()
	h.Record(5000)
	h.Record(500)
	h.Record(50000)
	if h.Min() != 500 {
		t.Errorf("Min() = %d, want 500", h.Min())
	}
	if h.Max() != 50000 {
		t.Errorf("Max() = %d, want 50000", h.Max())
	}
}

func TestMeanZeroWhenEmpty(t *testing.T) {
	h := New()
	if h.Mean() != 0 {
		t.Fatalf("Mean() on empty histogram = %d, want 0", h.Mean())
	}
	if h.Percentile(0.5) != 0 {
		t.Fatalf("Percentile on empty histogram should be 0")
	}
}

func TestPercentileMonotonicity(t *testing.T) {
	h := New()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		h.Record(uint64(rng.Intn(1_000_000) + 1))
	}

	ps := []float64{0.01, 0.1, 0.5, 0.9, 0.99, 0.999, 0.9999}
	prev := uint64(0)
	for _, p := range ps {
		v := h.Percentile(p)
		if v < prev {
			t.Fatalf("percentile(%v) = %d < previous %d, monotonicity violated", p, v, prev)
		}
		prev = v
	}
}

func TestPercentilesOfUniformSample(t *testing.T) {
	h := New()
	rng := rand.New(rand.NewSource(2))
	const n = 1_000_000
	for i := 0; i < n; i++ {
		us := rng.Intn(100) + 1 // uniform 1..100 us
		h.Record(uint64(us) * 1000)
	}

	if h.Count() != n {
		t.Fatalf("Count() = %d, want %d", h.Count(), n)
	}
	if h.Min() != 1000 {
		t.Fatalf("Min() = %d, want 1000", h.Min())
	}

	p50 := h.P50()
	if p50 != 64000 && p50 != 128000 {
		t.Fatalf("P50() = %d, want 64000 or 128000", p50)
	}
}

func TestResetClearsState(t *testing.T) {
	h := New()
	h.Record(5000)
	h.Record(10000)
	h.Reset()

	if h.Count() != 0 {
		t.Fatalf("Count() after Reset = %d, want 0", h.Count())
	}
	if h.Min() != ^uint64(0) {
		t.Fatal("Min() after Reset should be sentinel max-uint64")
	}
	if h.Max() != 0 {
		t.Fatal("Max() after Reset should be 0")
	}
}

func TestBucketSumEqualsCount(t *testing.T) {
	h := New()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 5000; i++ {
		h.Record(uint64(rng.Intn(2_000_000)))
	}
	var sum uint64
	for i := 0; i < NumBuckets; i++ {
		sum += h.buckets[i]
	}
	if sum != h.Count() {
		t.Fatalf("sum(buckets) = %d, count = %d", sum, h.Count())
	}
}

func TestStdDevApproximation(t *testing.T) {
	h := New()
	h.Record(1000)
	h.Record(9000)
	if got, want := h.StdDev(), uint64(2000); got != want {
		t.Fatalf("StdDev() = %d, want %d (range/4)", got, want)
	}
}
