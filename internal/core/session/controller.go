// Package session binds a timed meditation session to the breathing
// scheduler and a once-per-second countdown.
package session

import (
	"errors"
	"fmt"
	"time"

	"breathe/internal/clock"

	"go.uber.org/zap"
)

var (
	// ErrInvalidDuration indicates a session shorter than one minute.
	ErrInvalidDuration = errors.New("session duration must be at least one minute")
	// ErrAlreadyRunning indicates Start was called during a session.
	ErrAlreadyRunning = errors.New("session already running")
)

const (
	// DefaultMinutes is the preselected session length.
	DefaultMinutes = 5
	tickInterval   = time.Second
)

// Breather is the breathing cycle driven by a session.
type Breather interface {
	Start() error
	Stop()
}

// State is a snapshot of the session.
type State struct {
	DurationMinutes  int
	RemainingSeconds int
	Running          bool
}

// Controller owns session state. It is not safe for concurrent use: every
// method and every clock callback must run on the same goroutine.
type Controller struct {
	clock    clock.Clock
	view     View
	breather Breather
	logger   *zap.Logger

	state      State
	ticker     clock.Timer
	generation uint64
	onFinish   []func()
}

// NewController creates a Controller showing the setup screen values for
// defaultMinutes. Values below one fall back to DefaultMinutes.
func NewController(clk clock.Clock, view View, breather Breather, logger *zap.Logger, defaultMinutes int) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if view == nil {
		view = MultiView{}
	}
	if defaultMinutes < 1 {
		defaultMinutes = DefaultMinutes
	}
	return &Controller{
		clock:    clk,
		view:     view,
		breather: breather,
		logger:   logger,
		state:    State{DurationMinutes: defaultMinutes},
	}
}

// OnFinish registers a handler invoked once each time a session completes
// or is stopped.
func (controller *Controller) OnFinish(handler func()) {
	controller.onFinish = append(controller.onFinish, handler)
}

// State returns a snapshot of the session.
func (controller *Controller) State() State {
	return controller.state
}

// Duration returns the selected session length in minutes.
func (controller *Controller) Duration() int {
	return controller.state.DurationMinutes
}

// SetDuration selects the session length for the next Start.
func (controller *Controller) SetDuration(minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, minutes)
	}
	controller.state.DurationMinutes = minutes
	controller.view.SetDuration(minutes)
	return nil
}

// AddMinute extends the selected session length by one minute.
func (controller *Controller) AddMinute() int {
	controller.state.DurationMinutes++
	controller.view.SetDuration(controller.state.DurationMinutes)
	return controller.state.DurationMinutes
}

// StartSelected starts a session with the selected length.
func (controller *Controller) StartSelected() error {
	return controller.Start(controller.state.DurationMinutes)
}

// Start begins the countdown and the breathing cycle.
func (controller *Controller) Start(minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, minutes)
	}
	if controller.state.Running {
		return ErrAlreadyRunning
	}

	controller.generation++
	controller.state = State{
		DurationMinutes:  minutes,
		RemainingSeconds: minutes * 60,
		Running:          true,
	}
	controller.view.ShowScreen(ScreenMeditation)
	controller.view.SetCountdown(FormatCountdown(controller.state.RemainingSeconds))

	generation := controller.generation
	controller.ticker = controller.clock.Every(tickInterval, func() {
		controller.tick(generation)
	})

	if controller.breather != nil {
		if err := controller.breather.Start(); err != nil {
			controller.state.Running = false
			controller.stopTick()
			controller.view.ShowScreen(ScreenSetup)
			return fmt.Errorf("start breathing: %w", err)
		}
	}

	controller.logger.Info("session started", zap.Int("minutes", minutes))
	return nil
}

// Finish ends the running session and shows the completion screen. It is
// used both for natural completion and for an explicit stop; calling it
// without a running session does nothing.
func (controller *Controller) Finish() {
	if !controller.state.Running {
		return
	}
	controller.abort()
	controller.view.ShowScreen(ScreenFinish)
	controller.logger.Info("session finished",
		zap.Int("minutes", controller.state.DurationMinutes),
		zap.Int("remaining_seconds", controller.state.RemainingSeconds))

	for _, handler := range controller.onFinish {
		handler()
	}
}

// Reset returns to the setup screen. A running session is aborted without
// showing the completion screen.
func (controller *Controller) Reset() {
	if controller.state.Running {
		controller.abort()
		controller.logger.Info("session aborted")
	}
	controller.state.RemainingSeconds = 0
	controller.view.ShowScreen(ScreenSetup)
	controller.view.SetDuration(controller.state.DurationMinutes)
}

func (controller *Controller) abort() {
	controller.state.Running = false
	controller.stopTick()
	if controller.breather != nil {
		controller.breather.Stop()
	}
}

func (controller *Controller) stopTick() {
	if controller.ticker != nil {
		controller.ticker.Stop()
		controller.ticker = nil
	}
}

func (controller *Controller) tick(generation uint64) {
	if !controller.state.Running || generation != controller.generation {
		return
	}
	controller.state.RemainingSeconds--
	controller.view.SetCountdown(FormatCountdown(controller.state.RemainingSeconds))
	if controller.state.RemainingSeconds <= 0 {
		controller.Finish()
	}
}

// FormatCountdown renders seconds as mm:ss.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
