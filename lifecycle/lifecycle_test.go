package lifecycle

import (
	"testing"
	"time"
)

func TestShutdownStopped(t *testing.T) {
	s := New()
	if s.Stopped() {
		t.Fatal("fresh state should not be stopped")
	}
	s.Shutdown()
	if !s.Stopped() {
		t.Fatal("Stopped() should report true after Shutdown()")
	}
}

func TestSignalActivityAndCooldown(t *testing.T) {
	s := New()
	s.SetCooldown(20 * time.Millisecond)

	s.SignalActivity()
	if !s.Hot() {
		t.Fatal("Hot() should be true right after SignalActivity")
	}

	time.Sleep(40 * time.Millisecond)
	s.PollCooldown()
	if s.Hot() {
		t.Fatal("Hot() should be false after cooldown elapses and PollCooldown runs")
	}
}

func TestFlagsAlias(t *testing.T) {
	s := New()
	stop, hot := s.Flags()
	s.Shutdown()
	if *stop != 1 {
		t.Fatal("Flags() stop pointer should observe Shutdown()")
	}
	s.SignalActivity()
	if *hot != 1 {
		t.Fatal("Flags() hot pointer should observe SignalActivity()")
	}
}
