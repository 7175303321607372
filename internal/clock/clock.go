// Package clock provides the deferred-execution primitives used by the
// breathing scheduler and the session countdown.
//
// All callbacks scheduled through a Clock are expected to run on a single
// goroutine. Real hands every expired timer to a dispatcher (fyne.Do in the
// GUI, Loop.Post in headless mode); Fake runs them on the goroutine that
// calls Advance.
package clock

import (
	"sync"
	"time"
)

// Timer is a cancellable handle for a scheduled callback.
type Timer interface {
	// Stop prevents the callback from being dispatched again. It reports
	// whether the call stopped a timer that was still pending.
	Stop() bool
}

// Clock schedules one-shot and repeating callbacks.
type Clock interface {
	AfterFunc(delay time.Duration, callback func()) Timer
	Every(interval time.Duration, callback func()) Timer
}

// Dispatcher hands a callback to the goroutine that owns UI and session state.
type Dispatcher func(func())

// Real is a Clock backed by the runtime timers.
type Real struct {
	dispatch Dispatcher
}

// NewReal creates a Real clock. A nil dispatcher runs callbacks directly on
// the timer goroutine.
func NewReal(dispatch Dispatcher) *Real {
	if dispatch == nil {
		dispatch = func(callback func()) { callback() }
	}
	return &Real{dispatch: dispatch}
}

// AfterFunc schedules callback once after delay.
func (clock *Real) AfterFunc(delay time.Duration, callback func()) Timer {
	return time.AfterFunc(delay, func() {
		clock.dispatch(callback)
	})
}

// Every schedules callback every interval until the returned Timer is stopped.
func (clock *Real) Every(interval time.Duration, callback func()) Timer {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := &realTicker{
		ticker: time.NewTicker(interval),
		stopCh: make(chan struct{}),
	}
	go ticker.run(clock.dispatch, callback)
	return ticker
}

type realTicker struct {
	ticker   *time.Ticker
	stopCh   chan struct{}
	stopOnce sync.Once
}

func (ticker *realTicker) run(dispatch Dispatcher, callback func()) {
	defer ticker.ticker.Stop()
	for {
		select {
		case <-ticker.stopCh:
			return
		case <-ticker.ticker.C:
			dispatch(callback)
		}
	}
}

func (ticker *realTicker) Stop() bool {
	stopped := false
	ticker.stopOnce.Do(func() {
		close(ticker.stopCh)
		stopped = true
	})
	return stopped
}
