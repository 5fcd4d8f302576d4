package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Clock metric names
const (
	MetricNameTicksProcessed  = "clock_ticks_processed_total"
	MetricNameTrackerFailures = "clock_tracker_failures_total"
	MetricNameSkipTicks       = "clock_skip_ticks"
	MetricNameGameDay         = "clock_game_day"
)

// World metric names
const (
	MetricNameDailyResets   = "world_daily_resets_total"
	MetricNameShipments     = "world_shipments_total"
	MetricNameMoneyEarned   = "world_money_earned_total"
	MetricNameCropsMatured  = "world_crops_matured_total"
	MetricNameCropsWilted   = "world_crops_wilted_total"
	MetricNameEggsHatched   = "world_eggs_hatched_total"
	MetricNameSnapshotOps   = "world_snapshot_operations_total"
	MetricNameSleepSessions = "world_sleep_sessions_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Clock metric help text
const (
	HelpTextTicksProcessed  = "Total number of elementary clock ticks processed"
	HelpTextTrackerFailures = "Total number of tracker failures while processing a tick"
	HelpTextSkipTicks       = "Number of ticks delivered by a single skip"
	HelpTextGameDay         = "Current in-game day"
)

// World metric help text
const (
	HelpTextDailyResets   = "Total number of daily relationship resets"
	HelpTextShipments     = "Total number of shipping bin payouts"
	HelpTextMoneyEarned   = "Total money earned from shipping"
	HelpTextCropsMatured  = "Total number of crops that matured"
	HelpTextCropsWilted   = "Total number of crops that wilted"
	HelpTextEggsHatched   = "Total number of eggs hatched"
	HelpTextSnapshotOps   = "Total snapshot save and load operations"
	HelpTextSleepSessions = "Total sleep sequences by result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelTracker   = "tracker"
	LabelSpecies   = "species"
	LabelOperation = "operation"
	LabelResult    = "result"
)

// Label values
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultCancelled = "cancelled"
	ResultTimeout   = "timeout"
	OperationSave   = "save"
	OperationLoad   = "load"
)

// ============================================================================
// Buckets
// ============================================================================

// HTTPLatencyBuckets are the histogram buckets for HTTP latency
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// SkipTickBuckets cover skips from one minute up to several days
var SkipTickBuckets = []float64{1, 10, 60, 360, 720, 1440, 2880, 10080}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventPayloadDecodeFailed = "Failed to decode event payload for metrics"
)
