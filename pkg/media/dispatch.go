package media

import "sync"

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the function used to hand event callbacks to the
// host's frame loop. It should be called once during host initialization.
// While no function is registered, events are delivered inline on the
// decoder goroutine.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

func dispatch(callback func()) {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if callback == nil {
		return
	}
	if fn == nil {
		callback()
		return
	}
	fn(callback)
}
