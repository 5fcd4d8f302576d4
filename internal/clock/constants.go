package clock

// DefaultMinutesPerTick is the elementary advance of the clock
const DefaultMinutesPerTick = 1

// Log messages
const (
	LogMsgTrackerFailed   = "Tracker failed to process tick"
	LogMsgTrackerPanicked = "Tracker panicked while processing tick"
	LogMsgSkipStarted     = "Clock skip started"
	LogMsgSkipCompleted   = "Clock skip completed"
	LogMsgTimeLoaded      = "Clock time loaded"
	LogMsgTimeRealigned   = "Loaded time realigned to the tick grid"
	LogMsgSkipInterrupted = "Clock skip interrupted"
)
