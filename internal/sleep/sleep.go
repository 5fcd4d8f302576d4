// Package sleep implements the sleep sequence: fade the screen out, wait for
// the fade, skip the clock to the next morning, save, and reset the fade.
package sleep

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/logger"
	"github.com/osse101/farmstead/internal/metrics"
)

// Prompter asks the player a yes/no question and calls onConfirm on yes
type Prompter interface {
	TriggerYesNoPrompt(prompt string, onConfirm func())
}

// Fader drives the screen fade
type Fader interface {
	FadeOutScreen()
	ResetFadeDefaults()
}

// Clock is the game clock the sequence skips
type Clock interface {
	Now() domain.Timestamp
	Skip(ctx context.Context, target domain.Timestamp) error
}

// Saver persists the world
type Saver interface {
	Save(ctx context.Context) error
}

// Executor runs fn on the world's single writer and waits for it
type Executor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Config tunes the sequence
type Config struct {
	WakeHour     int
	PollInterval time.Duration
	FadeTimeout  time.Duration
	PromptText   string
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		WakeHour:     DefaultWakeHour,
		PollInterval: DefaultPollInterval,
		FadeTimeout:  DefaultFadeTimeout,
		PromptText:   DefaultPromptText,
	}
}

// Result describes a finished sleep
type Result struct {
	SessionID string           `json:"session_id"`
	From      domain.Timestamp `json:"from"`
	To        domain.Timestamp `json:"to"`
	Err       error            `json:"-"`
}

// Sequence is the sleep state machine. At most one sleep runs at a time.
type Sequence struct {
	cfg       Config
	prompter  Prompter
	fader     Fader
	clock     Clock
	saver     Saver
	executor  Executor
	publisher event.Publisher

	mu        sync.Mutex
	state     State
	sessionID string
	fadeDone  chan struct{}
	cancel    chan struct{}
	done      chan struct{}
	last      Result
}

// Deps are the collaborators of a Sequence. Publisher may be nil.
type Deps struct {
	Prompter  Prompter
	Fader     Fader
	Clock     Clock
	Saver     Saver
	Executor  Executor
	Publisher event.Publisher
}

// New creates an idle sequence
func New(cfg Config, deps Deps) *Sequence {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.FadeTimeout <= 0 {
		cfg.FadeTimeout = DefaultFadeTimeout
	}
	if deps.Publisher == nil {
		deps.Publisher = event.Discard{}
	}
	done := make(chan struct{})
	close(done)
	return &Sequence{
		cfg:       cfg,
		prompter:  deps.Prompter,
		fader:     deps.Fader,
		clock:     deps.Clock,
		saver:     deps.Saver,
		executor:  deps.Executor,
		publisher: deps.Publisher,
		state:     StateIdle,
		done:      done,
	}
}

// State returns the current stage
func (s *Sequence) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Request asks the player to confirm; a yes starts the sequence
func (s *Sequence) Request(ctx context.Context) error {
	if st := s.State(); st != StateIdle {
		return fmt.Errorf("%w: state %s", domain.ErrSleepInProgress, st)
	}
	logger.FromContext(ctx).Info(LogMsgSleepRequested)
	s.prompter.TriggerYesNoPrompt(s.cfg.PromptText, func() {
		if _, err := s.Start(ctx); err != nil {
			logger.FromContext(ctx).Warn(LogMsgSleepRejected, "error", err)
		}
	})
	return nil
}

// Start begins a confirmed sleep and returns its session id. The rest of the
// sequence runs in the background; Wait blocks until it finishes.
func (s *Sequence) Start(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		st := s.state
		s.mu.Unlock()
		return "", fmt.Errorf("%w: state %s", domain.ErrSleepInProgress, st)
	}
	s.sessionID = uuid.NewString()
	s.state = StateFadingOut
	s.fadeDone = make(chan struct{}, 1)
	s.cancel = make(chan struct{}, 1)
	s.done = make(chan struct{})
	session := s.sessionID
	fadeDone, cancel, done := s.fadeDone, s.cancel, s.done
	s.mu.Unlock()

	// the sequence outlives the request that started it
	runCtx := logger.WithSessionID(context.WithoutCancel(ctx), session)
	logger.FromContext(runCtx).Info(LogMsgSleepStarted)

	s.fader.FadeOutScreen()
	s.setState(StateWaitingForFade)

	go s.run(runCtx, session, fadeDone, cancel, done)
	return session, nil
}

// OnFadeOutComplete is called by the UI once the screen is fully faded out
func (s *Sequence) OnFadeOutComplete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.waitingForFade() {
		return fmt.Errorf("%w: state %s", domain.ErrSleepNotWaiting, s.state)
	}
	select {
	case s.fadeDone <- struct{}{}:
	default:
	}
	return nil
}

// Cancel aborts a sleep that is still waiting for the fade. Once the clock
// skip has started the sleep runs to completion.
func (s *Sequence) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.waitingForFade() {
		return fmt.Errorf("%w: state %s", domain.ErrSleepNotWaiting, s.state)
	}
	select {
	case s.cancel <- struct{}{}:
	default:
	}
	return nil
}

// Wait blocks until the current or most recent sleep has finished and
// returns its result
func (s *Sequence) Wait(ctx context.Context) (Result, error) {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.last.Err
}

func (s *Sequence) run(ctx context.Context, session string, fadeDone, cancel <-chan struct{}, done chan struct{}) {
	result := Result{SessionID: session}
	defer func() {
		s.mu.Lock()
		s.last = result
		s.state = StateIdle
		s.mu.Unlock()
		close(done)
	}()

	if err := s.waitForFade(ctx, fadeDone, cancel); err != nil {
		result.Err = err
		s.fader.ResetFadeDefaults()
		return
	}

	result.Err = s.executor.Do(ctx, func(ctx context.Context) error {
		result.From = s.clock.Now()
		result.To = result.From.NextDayAt(s.cfg.WakeHour)

		s.setState(StateSkipping)
		var errs []error
		if err := s.clock.Skip(ctx, result.To); err != nil {
			if errors.Is(err, domain.ErrInvalidSkip) {
				return err
			}
			// tracker failures were already logged per tracker; the morning still arrives
			logger.FromContext(ctx).Warn(LogMsgSleepSkipFailed, "error", err)
		}

		s.setState(StatePersisting)
		if err := s.saver.Save(ctx); err != nil {
			logger.FromContext(ctx).Error(LogMsgSleepSaveFailed, "error", err)
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	s.setState(StateResetting)
	s.fader.ResetFadeDefaults()

	if result.Err != nil {
		metrics.SleepSessions.WithLabelValues(metrics.ResultFailure).Inc()
		return
	}

	logger.FromContext(ctx).Info(LogMsgSleepCompleted, "from", result.From.String(), "to", result.To.String())
	if err := s.publisher.Publish(ctx, event.NewSleepCompletedEvent(session, result.From, result.To)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgSleepPublishError, "error", err)
	}
}

// waitForFade blocks until the fade signal arrives, logging on every poll
// interval, and gives up after the fade timeout or on cancel
func (s *Sequence) waitForFade(ctx context.Context, fadeDone, cancel <-chan struct{}) error {
	log := logger.FromContext(ctx)
	poll := time.NewTicker(s.cfg.PollInterval)
	defer poll.Stop()
	timeout := time.NewTimer(s.cfg.FadeTimeout)
	defer timeout.Stop()
	started := time.Now()

	for {
		select {
		case <-fadeDone:
			return nil
		case <-cancel:
			log.Info(LogMsgSleepCancelled)
			metrics.SleepSessions.WithLabelValues(metrics.ResultCancelled).Inc()
			return domain.ErrSleepCancelled
		case <-timeout.C:
			log.Error(LogMsgFadeTimedOut, "timeout", s.cfg.FadeTimeout)
			metrics.SleepSessions.WithLabelValues(metrics.ResultTimeout).Inc()
			return fmt.Errorf("%w after %s", domain.ErrFadeTimeout, s.cfg.FadeTimeout)
		case <-poll.C:
			log.Debug(LogMsgWaitingForFade, "waited", time.Since(started).Round(time.Millisecond))
		}
	}
}

func (s *Sequence) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
