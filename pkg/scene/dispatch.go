package scene

import "sync"

var (
	dispatchMu    sync.Mutex
	dispatchQueue []func()
)

// Dispatch schedules a callback to run on the frame loop during the next
// frame and is safe to call from any goroutine. Playback backends use it to
// hand events to the single-threaded player.
func Dispatch(callback func()) {
	if callback == nil {
		return
	}
	dispatchMu.Lock()
	dispatchQueue = append(dispatchQueue, callback)
	dispatchMu.Unlock()
}

// DrainDispatch runs and clears all pending callbacks in submission order.
// The host frame loop calls this once per frame, before stepping tickers.
func DrainDispatch() {
	dispatchMu.Lock()
	callbacks := append([]func(){}, dispatchQueue...)
	dispatchQueue = nil
	dispatchMu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}

// HasPendingDispatch reports whether callbacks are waiting for the next
// frame. Hosts use it to decide whether another frame is needed.
func HasPendingDispatch() bool {
	dispatchMu.Lock()
	defer dispatchMu.Unlock()
	return len(dispatchQueue) > 0
}
