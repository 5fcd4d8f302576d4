package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/logger"
	"github.com/osse101/farmstead/internal/metrics"
)

// journaledEvents are echoed to the log as they happen
var journaledEvents = []event.Type{
	event.DayStarted,
	event.ItemsShipped,
	event.EggHatched,
	event.SleepCompleted,
	event.SaveFailed,
}

// RegisterEventHandlers subscribes the metrics collector and the event
// journal to the bus
func RegisterEventHandlers(bus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	logger.Info(LogMsgMetricsCollectorRegistered)

	for _, t := range journaledEvents {
		bus.Subscribe(t, journalEvent)
	}
	logger.Info(LogMsgEventLoggerInitialized, "types", len(journaledEvents))

	return nil
}

func journalEvent(ctx context.Context, evt event.Event) error {
	logger.FromContext(ctx).Info(LogMsgEventObserved,
		"type", evt.Type,
		"version", evt.Version,
		"payload", evt.Payload)
	return nil
}
