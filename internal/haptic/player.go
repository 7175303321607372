package haptic

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher plays pulse patterns on a haptic device. Dispatch replaces any
// pattern in progress; Cancel silences the device. Both are best effort and
// never fail: a platform without a vibration motor simply does nothing.
type Dispatcher interface {
	Dispatch(pattern Pattern)
	Cancel()
}

// Nop is the Dispatcher for platforms without haptic output.
type Nop struct{}

// Dispatch does nothing.
func (Nop) Dispatch(Pattern) {}

// Cancel does nothing.
func (Nop) Cancel() {}

// Motor switches a haptic actuator on or off.
type Motor func(on bool)

// Player renders patterns onto a Motor from a background goroutine.
type Player struct {
	mu     sync.Mutex
	motor  Motor
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPlayer creates a Player driving motor.
func NewPlayer(motor Motor, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	if motor == nil {
		motor = func(bool) {}
	}
	return &Player{motor: motor, logger: logger}
}

// Dispatch starts playing pattern, replacing any playback in progress.
func (player *Player) Dispatch(pattern Pattern) {
	if !pattern.Valid() {
		player.logger.Debug("ignoring invalid haptic pattern", zap.Ints("pattern", pattern))
		player.Cancel()
		return
	}

	player.mu.Lock()
	player.stopLocked()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	player.cancel = cancel
	player.done = done
	player.mu.Unlock()

	steps := append(Pattern(nil), pattern...)
	go func() {
		defer close(done)
		player.play(ctx, steps)
	}()
}

// Cancel stops playback and switches the motor off.
func (player *Player) Cancel() {
	player.mu.Lock()
	player.stopLocked()
	player.mu.Unlock()
	player.motor(false)
}

func (player *Player) stopLocked() {
	if player.cancel == nil {
		return
	}
	player.cancel()
	<-player.done
	player.cancel = nil
	player.done = nil
}

func (player *Player) play(ctx context.Context, pattern Pattern) {
	defer player.motor(false)
	for index, millis := range pattern {
		if ctx.Err() != nil {
			return
		}
		player.motor(index%2 == 0 && millis > 0)
		if !sleepWithContext(ctx, time.Duration(millis)*time.Millisecond) {
			return
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	if duration <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
