package metrics

import (
	"context"

	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.DayStarted,
		event.ItemsShipped,
		event.CropMatured,
		event.CropWilted,
		event.EggHatched,
		event.SleepCompleted,
		event.GameSaved,
		event.SaveFailed,
		event.GameLoaded,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.DayStarted:
		DailyResets.Inc()
		if p, err := event.DecodePayload[event.DayStartedPayloadV1](evt.Payload); err == nil {
			GameDay.Set(float64(p.Day))
		}
	case event.ItemsShipped:
		p, err := event.DecodePayload[event.ItemsShippedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		Shipments.Inc()
		MoneyEarned.Add(float64(p.MoneyEarned))
	case event.CropMatured, event.CropWilted:
		p, err := event.DecodePayload[event.CropPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		if evt.Type == event.CropMatured {
			CropsMatured.WithLabelValues(p.Species).Inc()
		} else {
			CropsWilted.WithLabelValues(p.Species).Inc()
		}
	case event.EggHatched:
		EggsHatched.Inc()
	case event.GameSaved:
		SnapshotOperations.WithLabelValues(OperationSave, ResultSuccess).Inc()
	case event.GameLoaded:
		SnapshotOperations.WithLabelValues(OperationLoad, ResultSuccess).Inc()
	case event.SaveFailed:
		SnapshotOperations.WithLabelValues(OperationSave, ResultFailure).Inc()
	case event.SleepCompleted:
		SleepSessions.WithLabelValues(ResultSuccess).Inc()
	}

	return nil
}
