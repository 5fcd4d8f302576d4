package sleep

import "time"

// Defaults
const (
	DefaultWakeHour     = 6
	DefaultPollInterval = time.Second
	DefaultFadeTimeout  = 30 * time.Second
	DefaultPromptText   = "Do you want to sleep?"
)

// Log messages
const (
	LogMsgSleepRequested    = "Sleep requested"
	LogMsgSleepStarted      = "Sleep started, fading out"
	LogMsgWaitingForFade    = "Still waiting for screen fade"
	LogMsgFadeTimedOut      = "Screen fade did not complete in time"
	LogMsgSleepCancelled    = "Sleep cancelled"
	LogMsgSleepSkipFailed   = "Sleep time skip reported tracker failures"
	LogMsgSleepSaveFailed   = "Sleep save failed"
	LogMsgSleepCompleted    = "Sleep completed"
	LogMsgSleepRejected     = "Sleep confirmation ignored, sequence already running"
	LogMsgSleepPublishError = "Failed to publish sleep event"
)
