// Package scenetest drives player widgets in tests the way a host frame
// loop would, without real rendering or wall-clock time.
//
// A [Harness] installs a fake clock, routes media events through the scene
// dispatch queue and pumps frames on demand:
//
//	h := scenetest.NewHarness(t)
//	root := scene.NewContainer(geometry.Size{Width: 320, Height: 240})
//	// ... attach a player, emit element events ...
//	h.Pump()                          // deliver queued events
//	h.Step(16 * time.Millisecond)     // advance time and run one frame
package scenetest

import (
	"testing"
	"time"

	"github.com/go-vidview/vidview/pkg/media"
	"github.com/go-vidview/vidview/pkg/scene"
)

// frameDuration is the simulated frame interval used by Settle.
const frameDuration = 16 * time.Millisecond

// settleLimit bounds how many frames Settle runs before giving up.
const settleLimit = 1000

// Harness owns the fake frame loop for one test. Create it with
// [NewHarness]; global state is restored through t.Cleanup. Tests using a
// Harness must not run in parallel, since the scene clock and the media
// dispatch function are process-wide.
type Harness struct {
	clock     *FakeClock
	prevClock scene.Clock
}

// NewHarness installs a fake clock and registers the scene dispatch queue
// as the media event route, mirroring a real host's wiring.
func NewHarness(t *testing.T) *Harness {
	h := &Harness{clock: NewFakeClock()}
	h.prevClock = scene.SetClock(h.clock)
	media.RegisterDispatch(scene.Dispatch)
	t.Cleanup(h.cleanup)
	return h
}

func (h *Harness) cleanup() {
	media.RegisterDispatch(nil)
	scene.DrainDispatch()
	scene.SetClock(h.prevClock)
}

// Clock returns the fake clock for advancing time.
func (h *Harness) Clock() *FakeClock {
	return h.clock
}

// Pump runs a single frame cycle: drains the dispatch queue, then steps
// the active tickers.
func (h *Harness) Pump() {
	scene.DrainDispatch()
	scene.StepTickers()
}

// Step advances the clock by d and pumps one frame.
func (h *Harness) Step(d time.Duration) {
	h.clock.Advance(d)
	h.Pump()
}

// Settle pumps frames until no dispatches or tickers are pending. It
// fails the test when the loop does not quiet down within settleLimit
// frames.
func (h *Harness) Settle(t *testing.T) {
	t.Helper()
	for i := 0; i < settleLimit; i++ {
		if !scene.HasPendingDispatch() && !scene.HasActiveTickers() {
			return
		}
		h.Step(frameDuration)
	}
	t.Fatalf("frame loop did not settle after %d frames", settleLimit)
}
