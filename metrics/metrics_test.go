package metrics

import "testing"

func TestCountersRoundTrip(t *testing.T) {
	b := New()
	b.RecordMessageReceived()
	b.RecordMessageReceived()
	b.RecordMessageProcessed()
	b.RecordParseError()
	b.RecordSequenceGap()
	b.RecordQueueFull()
	b.RecordMessageDropped()

	if b.MessagesReceived() != 2 {
		t.Errorf("MessagesReceived() = %d, want 2", b.MessagesReceived())
	}
	if b.MessagesProcessed() != 1 {
		t.Errorf("MessagesProcessed() = %d, want 1", b.MessagesProcessed())
	}
	if b.ParseErrors() != 1 {
		t.Errorf("ParseErrors() = %d, want 1", b.ParseErrors())
	}
}

func TestSnapshotInFlightConservation(t *testing.T) {
	b := New()
	for i := 0; i < 10; i++ {
		b.RecordMessageReceived()
	}
	for i := 0; i < 7; i++ {
		b.RecordMessageProcessed()
	}
	b.RecordMessageDropped()

	snap := b.Snapshot()
	if snap.InFlight != 2 {
		t.Fatalf("InFlight = %d, want 2 (10 received - 7 processed - 1 dropped)", snap.InFlight)
	}
}

func TestResetClearsCountersAndHistograms(t *testing.T) {
	b := New()
	b.RecordMessageReceived()
	b.EndToEndLatency.Record(5000)
	b.Reset()

	if b.MessagesReceived() != 0 {
		t.Fatal("MessagesReceived() after Reset should be 0")
	}
	if b.EndToEndLatency.Count() != 0 {
		t.Fatal("EndToEndLatency.Count() after Reset should be 0")
	}
}
