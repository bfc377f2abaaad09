// ════════════════════════════════════════════════════════════════════════════════════════════════
// Core-Pinned Ring Consumer
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Runs a consumer loop pinned to a core, adaptively switching between a hot busy-spin and a
// cooler cadence that inserts one CPU pause every spinBudget empty polls once activity falls
// quiet (it never yields to the scheduler), parameterized by core id and
// lifecycle.State so it works over any spscring.Ring.

package threadutil

import (
	"runtime"
	"time"

	"github.com/nanofeed/marketfeed/event"
	"github.com/nanofeed/marketfeed/lifecycle"
	"github.com/nanofeed/marketfeed/spscring"
)

const (
	hotWindow  = 5 * time.Second
	spinBudget = 224
)

// PinnedConsumer launches a goroutine bound to cpuID that drains ring, calling handler for
// each event, until state reports Stopped(). done is closed on exit.
func PinnedConsumer(cpuID int, ring *spscring.Ring, state *lifecycle.State, handler func(*event.Event), done chan<- struct{}) {
	go func() {
		Pin(cpuID)
		defer func() {
			runtime.UnlockOSThread()
			close(done)
		}()

		var ev event.Event
		var miss int
		lastHit := time.Now()

		for {
			if state.Stopped() {
				return
			}

			if ring.Pop(&ev) {
				handler(&ev)
				miss = 0
				lastHit = time.Now()
				continue
			}

			if state.Hot() || time.Since(lastHit) <= hotWindow {
				continue
			}

			if miss++; miss >= spinBudget {
				miss = 0
				SpinWait(1)
			}
		}
	}()
}
