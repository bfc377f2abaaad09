// ============================================================================
// DATA-PLANE LIFECYCLE COORDINATION
// ============================================================================
//
// Lightweight atomic signaling shared by pinned producer/consumer/reporter
// goroutines: a stop flag every hot loop polls between attempts, and a hot
// flag recording recent activity so a consumer can stay in tight-spin mode
// instead of backing off the moment its ring looks momentarily empty.
//
// Built as an instantiable *State rather than package-level globals, since the data
// plane is a library component a process may construct more than once (tests,
// multiple feed handlers in one binary), which a singleton-per-process model can't serve.

package lifecycle

import (
	"sync/atomic"
	"time"
)

const defaultCooldown = time.Second

// State is the shutdown/activity coordination point for one feed handler
// instance. The zero State is usable; cooldown defaults to 1 second.
type State struct {
	stop    uint32
	_       [60]byte
	hot     uint32
	_       [60]byte
	lastHot int64
	_       [56]byte

	cooldownNs int64
}

// New returns a State with the default 1-second cooldown.
func New() *State {
	return &State{cooldownNs: int64(defaultCooldown)}
}

// SetCooldown overrides the idle period after which PollCooldown clears the
// hot flag. A zero duration selects the 1-second default.
func (s *State) SetCooldown(d time.Duration) {
	atomic.StoreInt64(&s.cooldownNs, int64(d))
}

// SignalActivity marks the state as active and records the current time for
// cooldown tracking.
//
//go:nosplit
func (s *State) SignalActivity() {
	atomic.StoreUint32(&s.hot, 1)
	atomic.StoreInt64(&s.lastHot, time.Now().UnixNano())
}

// PollCooldown clears the hot flag once the cooldown period has elapsed
// since the last SignalActivity call. Intended to be called inline from a
// consumer's spin loop.
//
//go:nosplit
func (s *State) PollCooldown() {
	if atomic.LoadUint32(&s.hot) == 1 {
		cooldown := atomic.LoadInt64(&s.cooldownNs)
		if cooldown == 0 {
			cooldown = int64(defaultCooldown)
		}
		if time.Now().UnixNano()-atomic.LoadInt64(&s.lastHot) > cooldown {
			atomic.StoreUint32(&s.hot, 0)
		}
	}
}

// Hot reports whether the state is currently considered active.
func (s *State) Hot() bool {
	return atomic.LoadUint32(&s.hot) == 1
}

// Shutdown sets the stop flag observed by every hot loop.
func (s *State) Shutdown() {
	atomic.StoreUint32(&s.stop, 1)
}

// Stopped reports whether Shutdown has been called.
func (s *State) Stopped() bool {
	return atomic.LoadUint32(&s.stop) == 1
}

// Flags returns direct pointers to the stop and hot words, for callers that
// want to poll them without a function-call boundary in a tight loop.
func (s *State) Flags() (*uint32, *uint32) {
	return &s.stop, &s.hot
}
