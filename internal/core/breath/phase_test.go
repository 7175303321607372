package breath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhaseDurations(t *testing.T) {
	assert.Equal(t, 4000*time.Millisecond, PhaseInhale.Duration())
	assert.Equal(t, 7000*time.Millisecond, PhaseHold.Duration())
	assert.Equal(t, 8000*time.Millisecond, PhaseExhale.Duration())
	assert.Equal(t, 19*time.Second, CycleDuration)
}

func TestPhaseOrder(t *testing.T) {
	assert.Equal(t, PhaseHold, PhaseInhale.Next())
	assert.Equal(t, PhaseExhale, PhaseHold.Next())
	assert.Equal(t, PhaseInhale, PhaseExhale.Next())
}

func TestPatternsSpanPhases(t *testing.T) {
	for _, phase := range Phases {
		t.Run(phase.String(), func(t *testing.T) {
			pattern := phase.Pattern()
			assert.True(t, pattern.Valid())
			assert.Zero(t, len(pattern)%2, "pattern should end on a pause")
			assert.Equal(t, phase.Duration(), pattern.Total())
		})
	}
}

func TestPatternsAreDistinguishable(t *testing.T) {
	inhale := PhaseInhale.Pattern()
	hold := PhaseHold.Pattern()
	exhale := PhaseExhale.Pattern()

	assert.Equal(t, 200, inhale[0])
	assert.Equal(t, 50, inhale[1])
	assert.Len(t, inhale, 32)

	assert.Len(t, hold, 14)
	for index := 0; index < len(hold); index += 2 {
		assert.Equal(t, hold[index], hold[index+1], "hold pulse and gap must match")
	}

	assert.Equal(t, []int{150, 50, 150, 650}, []int(exhale[:4]))
	assert.Len(t, exhale, 32)
}

func TestGuidanceText(t *testing.T) {
	assert.Equal(t, "吸って...", PhaseInhale.Guidance())
	assert.Equal(t, "止めて...", PhaseHold.Guidance())
	assert.Equal(t, "吐いて...", PhaseExhale.Guidance())
}
