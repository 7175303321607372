package clock

import (
	"context"
	"sync"
)

// Loop executes posted functions one at a time on the goroutine that calls Run.
type Loop struct {
	mu      sync.Mutex
	queue   chan func()
	quitCh  chan struct{}
	stopped bool
}

// NewLoop creates a Loop with the given queue capacity.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 16
	}
	return &Loop{
		queue:  make(chan func(), buffer),
		quitCh: make(chan struct{}),
	}
}

// Post queues fn for execution. Functions posted after Quit are dropped.
func (loop *Loop) Post(fn func()) {
	loop.mu.Lock()
	stopped := loop.stopped
	loop.mu.Unlock()
	if stopped {
		return
	}
	select {
	case loop.queue <- fn:
	case <-loop.quitCh:
	}
}

// Quit makes Run return after the function it is currently executing.
func (loop *Loop) Quit() {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	if loop.stopped {
		return
	}
	loop.stopped = true
	close(loop.quitCh)
}

// Run executes posted functions until Quit is called or ctx is done.
func (loop *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-loop.quitCh:
			return nil
		case fn := <-loop.queue:
			fn()
		}
	}
}
