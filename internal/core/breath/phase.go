package breath

import (
	"time"

	"breathe/internal/haptic"
)

// Phase is one segment of the breathing cycle.
type Phase int

const (
	PhaseInhale Phase = iota
	PhaseHold
	PhaseExhale
)

const (
	InhaleDuration = 4 * time.Second
	HoldDuration   = 7 * time.Second
	ExhaleDuration = 8 * time.Second

	// CycleDuration is one full Inhale, Hold, Exhale sequence.
	CycleDuration = InhaleDuration + HoldDuration + ExhaleDuration
)

// Pulse units repeated across each phase. Inhale is a continuous rumble,
// Hold a one-second heartbeat, Exhale a double buzz followed by a rest.
var (
	inhaleUnit = []int{200, 50}
	holdUnit   = []int{500, 500}
	exhaleUnit = []int{150, 50, 150, 650}
)

// Phases lists the cycle in order.
var Phases = []Phase{PhaseInhale, PhaseHold, PhaseExhale}

func (phase Phase) String() string {
	switch phase {
	case PhaseInhale:
		return "inhale"
	case PhaseHold:
		return "hold"
	case PhaseExhale:
		return "exhale"
	default:
		return "unknown"
	}
}

// Duration returns the nominal length of the phase.
func (phase Phase) Duration() time.Duration {
	switch phase {
	case PhaseHold:
		return HoldDuration
	case PhaseExhale:
		return ExhaleDuration
	default:
		return InhaleDuration
	}
}

// Guidance returns the on-screen prompt shown while the phase runs.
func (phase Phase) Guidance() string {
	switch phase {
	case PhaseHold:
		return "止めて..."
	case PhaseExhale:
		return "吐いて..."
	default:
		return "吸って..."
	}
}

// Next returns the phase that follows in the cycle.
func (phase Phase) Next() Phase {
	switch phase {
	case PhaseInhale:
		return PhaseHold
	case PhaseHold:
		return PhaseExhale
	default:
		return PhaseInhale
	}
}

// Pattern generates the haptic pulse pattern spanning the phase.
func (phase Phase) Pattern() haptic.Pattern {
	switch phase {
	case PhaseHold:
		return haptic.Fill(holdUnit, HoldDuration)
	case PhaseExhale:
		return haptic.Fill(exhaleUnit, ExhaleDuration)
	default:
		return haptic.Fill(inhaleUnit, InhaleDuration)
	}
}

// State returns the scheduler state that corresponds to the phase.
func (phase Phase) State() State {
	switch phase {
	case PhaseHold:
		return StateHolding
	case PhaseExhale:
		return StateExhaling
	default:
		return StateInhaling
	}
}
