package clock

import "time"

// Fake is a simulated Clock for tests. Callbacks run synchronously on the
// goroutine that calls Advance, ordered by due time and then by the order in
// which they were scheduled.
type Fake struct {
	now    time.Duration
	seq    uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	clock    *Fake
	due      time.Duration
	seq      uint64
	interval time.Duration
	callback func()
	stopped  bool
}

// NewFake creates a Fake clock positioned at zero.
func NewFake() *Fake {
	return &Fake{}
}

// Now returns the simulated time elapsed since the clock was created.
func (clock *Fake) Now() time.Duration {
	return clock.now
}

// AfterFunc schedules callback once after delay.
func (clock *Fake) AfterFunc(delay time.Duration, callback func()) Timer {
	return clock.schedule(delay, 0, callback)
}

// Every schedules callback every interval.
func (clock *Fake) Every(interval time.Duration, callback func()) Timer {
	if interval <= 0 {
		interval = time.Second
	}
	return clock.schedule(interval, interval, callback)
}

// Pending returns the number of timers that have not fired or been stopped.
func (clock *Fake) Pending() int {
	count := 0
	for _, timer := range clock.timers {
		if !timer.stopped {
			count++
		}
	}
	return count
}

// Advance moves the clock forward by delta, running every callback that
// becomes due. Callbacks may schedule or stop other timers.
func (clock *Fake) Advance(delta time.Duration) {
	target := clock.now + delta
	for {
		timer := clock.nextDue(target)
		if timer == nil {
			break
		}
		clock.now = timer.due
		if timer.interval > 0 {
			timer.due += timer.interval
			timer.seq = clock.nextSeq()
		} else {
			timer.stopped = true
			clock.remove(timer)
		}
		timer.callback()
	}
	clock.now = target
}

func (clock *Fake) schedule(delay, interval time.Duration, callback func()) *fakeTimer {
	if delay < 0 {
		delay = 0
	}
	timer := &fakeTimer{
		clock:    clock,
		due:      clock.now + delay,
		seq:      clock.nextSeq(),
		interval: interval,
		callback: callback,
	}
	clock.timers = append(clock.timers, timer)
	return timer
}

func (clock *Fake) nextSeq() uint64 {
	clock.seq++
	return clock.seq
}

func (clock *Fake) nextDue(target time.Duration) *fakeTimer {
	var next *fakeTimer
	for _, timer := range clock.timers {
		if timer.stopped || timer.due > target {
			continue
		}
		if next == nil || timer.due < next.due || (timer.due == next.due && timer.seq < next.seq) {
			next = timer
		}
	}
	return next
}

func (clock *Fake) remove(target *fakeTimer) {
	for index, timer := range clock.timers {
		if timer == target {
			clock.timers = append(clock.timers[:index], clock.timers[index+1:]...)
			return
		}
	}
}

func (timer *fakeTimer) Stop() bool {
	if timer.stopped {
		return false
	}
	timer.stopped = true
	timer.clock.remove(timer)
	return true
}
