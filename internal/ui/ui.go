// Package ui provides headless stand-ins for the confirmation prompt and
// the screen fader so the server runs without a client attached.
package ui

import (
	"sync"
	"time"

	"github.com/osse101/farmstead/internal/logger"
)

// Log messages
const (
	LogMsgPromptShown     = "Prompt shown"
	LogMsgPromptDeclined  = "Prompt declined"
	LogMsgFadeOut         = "Screen fading out"
	LogMsgFadeComplete    = "Screen fade complete"
	LogMsgFadeSignalError = "Fade listener rejected completion"
	LogMsgFadeReset       = "Screen fade reset"
)

// AutoPrompter answers every yes/no prompt with a fixed answer
type AutoPrompter struct {
	Confirm bool
}

// TriggerYesNoPrompt calls onConfirm immediately when Confirm is set
func (p AutoPrompter) TriggerYesNoPrompt(prompt string, onConfirm func()) {
	logger.Debug(LogMsgPromptShown, "prompt", prompt, "auto_confirm", p.Confirm)
	if !p.Confirm {
		logger.Info(LogMsgPromptDeclined, "prompt", prompt)
		return
	}
	onConfirm()
}

// FadeListener receives the fade-complete signal
type FadeListener interface {
	OnFadeOutComplete() error
}

// TimedFader pretends to fade the screen and signals completion after a
// fixed delay. A negative delay never signals; the client is then expected
// to report completion itself.
type TimedFader struct {
	delay time.Duration

	mu       sync.Mutex
	listener FadeListener
	timer    *time.Timer
	fading   bool
}

// NewTimedFader creates a fader with the given completion delay
func NewTimedFader(delay time.Duration) *TimedFader {
	return &TimedFader{delay: delay}
}

// Bind sets the listener notified when a fade completes
func (f *TimedFader) Bind(l FadeListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listener = l
}

// Fading reports whether the screen is currently faded or fading out
func (f *TimedFader) Fading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fading
}

// FadeOutScreen starts a fade
func (f *TimedFader) FadeOutScreen() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fading = true
	logger.Debug(LogMsgFadeOut, "delay", f.delay)
	if f.delay < 0 || f.listener == nil {
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	listener := f.listener
	f.timer = time.AfterFunc(f.delay, func() {
		logger.Debug(LogMsgFadeComplete)
		if err := listener.OnFadeOutComplete(); err != nil {
			logger.Warn(LogMsgFadeSignalError, "error", err)
		}
	})
}

// ResetFadeDefaults cancels any pending completion and clears the fade
func (f *TimedFader) ResetFadeDefaults() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.fading = false
	logger.Debug(LogMsgFadeReset)
}
