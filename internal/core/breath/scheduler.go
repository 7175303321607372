// Package breath sequences the Inhale, Hold and Exhale phases of a guided
// breathing session.
package breath

import (
	"errors"

	"breathe/internal/clock"
	"breathe/internal/haptic"

	"go.uber.org/zap"
)

// ErrAlreadyActive indicates Start was called while a cycle is running.
var ErrAlreadyActive = errors.New("breathing scheduler already active")

// State represents the current Scheduler mode.
type State string

const (
	StateIdle     State = "idle"
	StateInhaling State = "inhaling"
	StateHolding  State = "holding"
	StateExhaling State = "exhaling"
)

// Guide receives the guidance text of each phase.
type Guide interface {
	SetGuidance(text string)
}

// PhaseObserver is implemented by guides that also animate phase changes.
type PhaseObserver interface {
	PhaseStarted(phase Phase)
}

// Scheduler is a state machine that cycles through the breathing phases
// until stopped. It is not safe for concurrent use: Start, Stop and every
// clock callback must run on the same goroutine.
type Scheduler struct {
	clock   clock.Clock
	guide   Guide
	haptics haptic.Dispatcher
	logger  *zap.Logger

	state      State
	active     bool
	generation uint64
	pending    clock.Timer
	cycles     int
}

// NewScheduler creates an idle Scheduler.
func NewScheduler(clk clock.Clock, guide Guide, haptics haptic.Dispatcher, logger *zap.Logger) *Scheduler {
	if haptics == nil {
		haptics = haptic.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		clock:   clk,
		guide:   guide,
		haptics: haptics,
		logger:  logger,
		state:   StateIdle,
	}
}

// Start enters the Inhale phase immediately and keeps cycling until Stop.
func (scheduler *Scheduler) Start() error {
	if scheduler.active {
		return ErrAlreadyActive
	}
	scheduler.active = true
	scheduler.generation++
	scheduler.cycles = 0
	scheduler.logger.Debug("breathing started")
	scheduler.enter(PhaseInhale)
	return nil
}

// Stop cancels the pending transition, silences haptics and returns to idle.
// Stopping an idle scheduler does nothing.
func (scheduler *Scheduler) Stop() {
	if !scheduler.active {
		return
	}
	scheduler.active = false
	if scheduler.pending != nil {
		scheduler.pending.Stop()
		scheduler.pending = nil
	}
	scheduler.state = StateIdle
	scheduler.haptics.Cancel()
	scheduler.logger.Debug("breathing stopped", zap.Int("cycles", scheduler.cycles))
}

// State returns the current mode.
func (scheduler *Scheduler) State() State {
	return scheduler.state
}

// Active reports whether the scheduler is cycling.
func (scheduler *Scheduler) Active() bool {
	return scheduler.active
}

// Cycles returns the number of completed Inhale, Hold, Exhale sequences.
func (scheduler *Scheduler) Cycles() int {
	return scheduler.cycles
}

func (scheduler *Scheduler) enter(phase Phase) {
	scheduler.state = phase.State()
	if scheduler.guide != nil {
		scheduler.guide.SetGuidance(phase.Guidance())
		if observer, ok := scheduler.guide.(PhaseObserver); ok {
			observer.PhaseStarted(phase)
		}
	}
	scheduler.haptics.Dispatch(phase.Pattern())
	scheduler.logger.Debug("breathing phase",
		zap.Stringer("phase", phase),
		zap.Duration("duration", phase.Duration()),
		zap.Int("cycle", scheduler.cycles))

	generation := scheduler.generation
	scheduler.pending = scheduler.clock.AfterFunc(phase.Duration(), func() {
		scheduler.advance(generation, phase)
	})
}

// advance runs when a phase timer fires. The timer may already have been
// dispatched when Stop cancelled it, so the active flag and the generation
// of the lineage that scheduled it are checked before any side effect.
func (scheduler *Scheduler) advance(generation uint64, from Phase) {
	if !scheduler.active || generation != scheduler.generation {
		return
	}
	scheduler.pending = nil
	if from == PhaseExhale {
		scheduler.cycles++
	}
	scheduler.enter(from.Next())
}
