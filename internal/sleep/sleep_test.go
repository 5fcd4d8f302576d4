package sleep

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/farmstead/internal/clock"
	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/worker"
)

type autoPrompter struct {
	confirm bool
	prompts []string
}

func (p *autoPrompter) TriggerYesNoPrompt(prompt string, onConfirm func()) {
	p.prompts = append(p.prompts, prompt)
	if p.confirm {
		onConfirm()
	}
}

type countingFader struct {
	fadeOuts atomic.Int32
	resets   atomic.Int32
	onFade   func()
}

func (f *countingFader) FadeOutScreen() {
	f.fadeOuts.Add(1)
	if f.onFade != nil {
		f.onFade()
	}
}

func (f *countingFader) ResetFadeDefaults() {
	f.resets.Add(1)
}

type fakeSaver struct {
	mu    sync.Mutex
	saved []domain.Timestamp
	clock *clock.Clock
	err   error
}

func (s *fakeSaver) Save(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, s.clock.Now())
	return s.err
}

type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *eventRecorder) Publish(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

type fixture struct {
	seq      *Sequence
	clock    *clock.Clock
	fader    *countingFader
	saver    *fakeSaver
	prompter *autoPrompter
	events   *eventRecorder
}

func newFixture(t *testing.T, cfg Config, start domain.Timestamp) *fixture {
	t.Helper()
	pool := worker.NewPool(1, 10)
	pool.Start()
	t.Cleanup(pool.Stop)

	c := clock.New(start)
	f := &fixture{
		clock:    c,
		fader:    &countingFader{},
		saver:    &fakeSaver{clock: c},
		prompter: &autoPrompter{confirm: true},
		events:   &eventRecorder{},
	}
	f.seq = New(cfg, Deps{
		Prompter:  f.prompter,
		Fader:     f.fader,
		Clock:     c,
		Saver:     f.saver,
		Executor:  pool,
		Publisher: f.events,
	})
	return f
}

func fastConfig() Config {
	return Config{
		WakeHour:     DefaultWakeHour,
		PollInterval: 5 * time.Millisecond,
		FadeTimeout:  2 * time.Second,
		PromptText:   DefaultPromptText,
	}
}

func waitResult(t *testing.T, seq *Sequence) (Result, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return seq.Wait(ctx)
}

func TestSequence_FullNight(t *testing.T) {
	f := newFixture(t, fastConfig(), domain.Timestamp{Day: 5, Hour: 23, Minute: 59})

	require.NoError(t, f.seq.Request(context.Background()))
	assert.Equal(t, []string{DefaultPromptText}, f.prompter.prompts)
	assert.Equal(t, StateWaitingForFade, f.seq.State())

	require.NoError(t, f.seq.OnFadeOutComplete())
	result, err := waitResult(t, f.seq)

	require.NoError(t, err)
	want := domain.Timestamp{Day: 6, Hour: 6, Minute: 0}
	assert.Equal(t, want, f.clock.Now())
	assert.Equal(t, want, result.To)
	assert.Equal(t, []domain.Timestamp{want}, f.saver.saved)
	assert.Equal(t, int32(1), f.fader.fadeOuts.Load())
	assert.Equal(t, int32(1), f.fader.resets.Load())
	assert.Equal(t, StateIdle, f.seq.State())

	require.Len(t, f.events.events, 1)
	assert.Equal(t, event.SleepCompleted, f.events.events[0].Type)
}

func TestSequence_FadeCompletingDuringFadeOut(t *testing.T) {
	f := newFixture(t, fastConfig(), domain.StartOfGame())
	f.fader.onFade = func() { _ = f.seq.OnFadeOutComplete() }

	_, err := f.seq.Start(context.Background())
	require.NoError(t, err)

	_, err = waitResult(t, f.seq)
	require.NoError(t, err)
	assert.Equal(t, domain.Timestamp{Day: 2, Hour: 6, Minute: 0}, f.clock.Now())
}

func TestSequence_RejectsDoubleSleep(t *testing.T) {
	f := newFixture(t, fastConfig(), domain.StartOfGame())

	_, err := f.seq.Start(context.Background())
	require.NoError(t, err)

	_, err = f.seq.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrSleepInProgress)
	assert.ErrorIs(t, f.seq.Request(context.Background()), domain.ErrSleepInProgress)

	require.NoError(t, f.seq.OnFadeOutComplete())
	_, err = waitResult(t, f.seq)
	require.NoError(t, err)

	assert.Len(t, f.saver.saved, 1)
	assert.Equal(t, int32(1), f.fader.fadeOuts.Load())
}

func TestSequence_FadeTimeoutReturnsToIdle(t *testing.T) {
	cfg := fastConfig()
	cfg.FadeTimeout = 30 * time.Millisecond
	start := domain.StartOfGame()
	f := newFixture(t, cfg, start)

	_, err := f.seq.Start(context.Background())
	require.NoError(t, err)

	_, err = waitResult(t, f.seq)

	assert.ErrorIs(t, err, domain.ErrFadeTimeout)
	assert.Equal(t, StateIdle, f.seq.State())
	assert.Equal(t, start, f.clock.Now())
	assert.Empty(t, f.saver.saved)
	assert.Equal(t, int32(1), f.fader.resets.Load())

	_, err = f.seq.Start(context.Background())
	assert.NoError(t, err, "a timed out sleep can be retried")
	require.NoError(t, f.seq.OnFadeOutComplete())
	_, err = waitResult(t, f.seq)
	assert.NoError(t, err)
}

func TestSequence_CancelWhileWaiting(t *testing.T) {
	start := domain.StartOfGame()
	f := newFixture(t, fastConfig(), start)

	assert.ErrorIs(t, f.seq.Cancel(), domain.ErrSleepNotWaiting)

	_, err := f.seq.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.seq.Cancel())

	_, err = waitResult(t, f.seq)

	assert.ErrorIs(t, err, domain.ErrSleepCancelled)
	assert.Equal(t, start, f.clock.Now())
	assert.Equal(t, StateIdle, f.seq.State())
	assert.Empty(t, f.events.events)
}

func TestSequence_SaveFailureIsReturned(t *testing.T) {
	f := newFixture(t, fastConfig(), domain.StartOfGame())
	diskFull := errors.New("disk full")
	f.saver.err = diskFull

	_, err := f.seq.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.seq.OnFadeOutComplete())

	_, err = waitResult(t, f.seq)

	assert.ErrorIs(t, err, diskFull)
	assert.Equal(t, domain.Timestamp{Day: 2, Hour: 6, Minute: 0}, f.clock.Now())
	assert.Equal(t, int32(1), f.fader.resets.Load())
	assert.Empty(t, f.events.events)
}

func TestSequence_DeclinedPromptDoesNothing(t *testing.T) {
	f := newFixture(t, fastConfig(), domain.StartOfGame())
	f.prompter.confirm = false

	require.NoError(t, f.seq.Request(context.Background()))

	assert.Equal(t, StateIdle, f.seq.State())
	assert.Equal(t, int32(0), f.fader.fadeOuts.Load())
}

func TestOnFadeOutComplete_WhenIdle(t *testing.T) {
	f := newFixture(t, fastConfig(), domain.StartOfGame())

	assert.ErrorIs(t, f.seq.OnFadeOutComplete(), domain.ErrSleepNotWaiting)
}
