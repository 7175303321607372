package breath

import (
	"testing"
	"time"

	"breathe/internal/clock"
	"breathe/internal/haptic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGuide struct {
	clock  *clock.Fake
	texts  []string
	at     []time.Duration
	phases []Phase
}

func (guide *recordingGuide) SetGuidance(text string) {
	guide.texts = append(guide.texts, text)
	if guide.clock != nil {
		guide.at = append(guide.at, guide.clock.Now())
	}
}

func (guide *recordingGuide) PhaseStarted(phase Phase) {
	guide.phases = append(guide.phases, phase)
}

type recordingHaptics struct {
	patterns []haptic.Pattern
	cancels  int
}

func (haptics *recordingHaptics) Dispatch(pattern haptic.Pattern) {
	haptics.patterns = append(haptics.patterns, pattern)
}

func (haptics *recordingHaptics) Cancel() {
	haptics.cancels++
}

func newTestScheduler() (*Scheduler, *clock.Fake, *recordingGuide, *recordingHaptics) {
	fake := clock.NewFake()
	guide := &recordingGuide{clock: fake}
	haptics := &recordingHaptics{}
	return NewScheduler(fake, guide, haptics, nil), fake, guide, haptics
}

func TestStartEntersInhaleImmediately(t *testing.T) {
	scheduler, fake, guide, haptics := newTestScheduler()

	require.NoError(t, scheduler.Start())

	assert.Equal(t, StateInhaling, scheduler.State())
	assert.True(t, scheduler.Active())
	assert.Equal(t, []string{"吸って..."}, guide.texts)
	assert.Equal(t, []time.Duration{0}, guide.at)
	require.Len(t, haptics.patterns, 1)
	assert.Equal(t, InhaleDuration, haptics.patterns[0].Total())
	assert.Equal(t, 1, fake.Pending())
}

func TestStartWhileActiveIsRejected(t *testing.T) {
	scheduler, fake, guide, _ := newTestScheduler()
	require.NoError(t, scheduler.Start())

	assert.ErrorIs(t, scheduler.Start(), ErrAlreadyActive)
	assert.Equal(t, 1, fake.Pending())
	assert.Len(t, guide.texts, 1)
}

func TestPhaseSequenceAndTiming(t *testing.T) {
	scheduler, fake, guide, haptics := newTestScheduler()
	require.NoError(t, scheduler.Start())

	fake.Advance(3*CycleDuration - time.Millisecond)

	var expectedAt []time.Duration
	var expectedTexts []string
	var expectedPhases []Phase
	var elapsed time.Duration
	for cycle := 0; cycle < 3; cycle++ {
		for _, phase := range Phases {
			expectedAt = append(expectedAt, elapsed)
			expectedTexts = append(expectedTexts, phase.Guidance())
			expectedPhases = append(expectedPhases, phase)
			elapsed += phase.Duration()
		}
	}

	assert.Equal(t, expectedTexts, guide.texts)
	assert.Equal(t, expectedAt, guide.at)
	assert.Equal(t, expectedPhases, guide.phases)
	assert.Len(t, haptics.patterns, 9)
	assert.Equal(t, StateExhaling, scheduler.State())
	assert.Equal(t, 2, scheduler.Cycles())

	fake.Advance(time.Millisecond)
	assert.Equal(t, StateInhaling, scheduler.State())
	assert.Equal(t, 3, scheduler.Cycles())
	assert.Equal(t, 1, fake.Pending())
}

func TestStatesFollowPhases(t *testing.T) {
	scheduler, fake, _, _ := newTestScheduler()
	require.NoError(t, scheduler.Start())

	fake.Advance(InhaleDuration)
	assert.Equal(t, StateHolding, scheduler.State())
	fake.Advance(HoldDuration)
	assert.Equal(t, StateExhaling, scheduler.State())
	fake.Advance(ExhaleDuration)
	assert.Equal(t, StateInhaling, scheduler.State())
}

func TestStopAtAnyPointSilencesScheduler(t *testing.T) {
	offsets := []time.Duration{
		0,
		time.Millisecond,
		InhaleDuration - time.Millisecond,
		InhaleDuration,
		10 * time.Second,
		InhaleDuration + HoldDuration,
		CycleDuration - time.Millisecond,
		CycleDuration,
		2*CycleDuration + 5*time.Second,
	}

	for _, offset := range offsets {
		t.Run(offset.String(), func(t *testing.T) {
			scheduler, fake, guide, haptics := newTestScheduler()
			require.NoError(t, scheduler.Start())
			fake.Advance(offset)

			texts := len(guide.texts)
			dispatches := len(haptics.patterns)
			scheduler.Stop()

			assert.Equal(t, StateIdle, scheduler.State())
			assert.False(t, scheduler.Active())
			assert.Equal(t, 1, haptics.cancels)
			assert.Zero(t, fake.Pending())

			fake.Advance(10 * CycleDuration)
			assert.Len(t, guide.texts, texts)
			assert.Len(t, haptics.patterns, dispatches)
		})
	}
}

func TestStopWhenIdleIsNoop(t *testing.T) {
	scheduler, _, _, haptics := newTestScheduler()
	scheduler.Stop()
	assert.Zero(t, haptics.cancels)

	require.NoError(t, scheduler.Start())
	scheduler.Stop()
	scheduler.Stop()
	assert.Equal(t, 1, haptics.cancels)
}

func TestRestartAfterStop(t *testing.T) {
	scheduler, fake, guide, _ := newTestScheduler()
	require.NoError(t, scheduler.Start())
	fake.Advance(5 * time.Second)
	scheduler.Stop()

	require.NoError(t, scheduler.Start())
	assert.Equal(t, StateInhaling, scheduler.State())
	assert.Equal(t, 1, fake.Pending())
	assert.Equal(t, []string{"吸って...", "止めて...", "吸って..."}, guide.texts)
}

// capturingClock hands out timers whose Stop does not prevent the callback
// from being invoked by the test, mimicking a timer that already expired and
// sits in the dispatch queue.
type capturingClock struct {
	callbacks []func()
}

type inertTimer struct{}

func (inertTimer) Stop() bool { return false }

func (capture *capturingClock) AfterFunc(_ time.Duration, callback func()) clock.Timer {
	capture.callbacks = append(capture.callbacks, callback)
	return inertTimer{}
}

func (capture *capturingClock) Every(_ time.Duration, callback func()) clock.Timer {
	capture.callbacks = append(capture.callbacks, callback)
	return inertTimer{}
}

func TestLateCallbackAfterStopHasNoEffect(t *testing.T) {
	capture := &capturingClock{}
	guide := &recordingGuide{}
	haptics := &recordingHaptics{}
	scheduler := NewScheduler(capture, guide, haptics, nil)

	require.NoError(t, scheduler.Start())
	require.Len(t, capture.callbacks, 1)
	scheduler.Stop()

	capture.callbacks[0]()

	assert.Equal(t, []string{"吸って..."}, guide.texts)
	assert.Len(t, haptics.patterns, 1)
	assert.Equal(t, StateIdle, scheduler.State())
	assert.Len(t, capture.callbacks, 1)
}

func TestLateCallbackFromPreviousSessionIsIgnored(t *testing.T) {
	capture := &capturingClock{}
	guide := &recordingGuide{}
	scheduler := NewScheduler(capture, guide, nil, nil)

	require.NoError(t, scheduler.Start())
	scheduler.Stop()
	require.NoError(t, scheduler.Start())
	require.Len(t, capture.callbacks, 2)

	capture.callbacks[0]()
	assert.Equal(t, StateInhaling, scheduler.State())
	assert.Len(t, guide.texts, 2)
	assert.Len(t, capture.callbacks, 2)

	capture.callbacks[1]()
	assert.Equal(t, StateHolding, scheduler.State())
	assert.Len(t, capture.callbacks, 3)
}

func TestNilGuideStillCycles(t *testing.T) {
	fake := clock.NewFake()
	haptics := &recordingHaptics{}
	scheduler := NewScheduler(fake, nil, haptics, nil)

	require.NoError(t, scheduler.Start())
	fake.Advance(CycleDuration)
	assert.Len(t, haptics.patterns, 4)
}
