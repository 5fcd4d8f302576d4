package sse

import (
	"context"

	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/logger"
)

// StreamedEvents are the bus events forwarded to stream clients
var StreamedEvents = []event.Type{
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

// Subscriber bridges the event bus to the hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a bridge from bus to hub
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers the bridge for every streamed event type
func (s *Subscriber) Subscribe() {
	for _, t := range StreamedEvents {
		s.bus.Subscribe(t, s.forward)
	}
	logger.Info(LogMsgSubscribed, "types", len(StreamedEvents))
}

// forward re-broadcasts the typed payload under the bus type name
func (s *Subscriber) forward(ctx context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type)
	return nil
}
