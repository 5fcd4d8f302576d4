package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Clock Metrics
var (
	TicksProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTicksProcessed,
			Help: HelpTextTicksProcessed,
		},
	)

	TrackerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTrackerFailures,
			Help: HelpTextTrackerFailures,
		},
		[]string{LabelTracker},
	)

	SkipTicks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSkipTicks,
			Help:    HelpTextSkipTicks,
			Buckets: SkipTickBuckets,
		},
	)

	GameDay = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameGameDay,
			Help: HelpTextGameDay,
		},
	)
)

// World Metrics
var (
	DailyResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyResets,
			Help: HelpTextDailyResets,
		},
	)

	Shipments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameShipments,
			Help: HelpTextShipments,
		},
	)

	MoneyEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneyEarned,
			Help: HelpTextMoneyEarned,
		},
	)

	CropsMatured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsMatured,
			Help: HelpTextCropsMatured,
		},
		[]string{LabelSpecies},
	)

	CropsWilted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsWilted,
			Help: HelpTextCropsWilted,
		},
		[]string{LabelSpecies},
	)

	EggsHatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEggsHatched,
			Help: HelpTextEggsHatched,
		},
	)

	SnapshotOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotOps,
			Help: HelpTextSnapshotOps,
		},
		[]string{LabelOperation, LabelResult},
	)

	SleepSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSleepSessions,
			Help: HelpTextSleepSessions,
		},
		[]string{LabelResult},
	)
)
