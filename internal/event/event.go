package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/farmstead/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Common event types
const (
	DayStarted     Type = domain.EventTypeDayStarted
	ItemsShipped   Type = domain.EventTypeItemsShipped
	CropMatured    Type = domain.EventTypeCropMatured
	CropWilted     Type = domain.EventTypeCropWilted
	EggHatched     Type = domain.EventTypeEggHatched
	SleepCompleted Type = domain.EventTypeSleepCompleted
	GameSaved      Type = domain.EventTypeGameSaved
	SaveFailed     Type = domain.EventTypeSaveFailed
	GameLoaded     Type = domain.EventTypeGameLoaded
)

// Typed event payloads for type safety

// DayStartedPayloadV1 is the typed payload for day started events
type DayStartedPayloadV1 struct {
	Day                  uint32 `json:"day"`
	RelationshipsCleared int    `json:"relationships_cleared"`
}

// ItemsShippedPayloadV1 is the typed payload for shipping payouts
type ItemsShippedPayloadV1 struct {
	Day         uint32         `json:"day"`
	Items       map[string]int `json:"items"`
	MoneyEarned int            `json:"money_earned"`
}

// CropPayloadV1 is the typed payload for crop lifecycle events
type CropPayloadV1 struct {
	PlotID    int              `json:"plot_id"`
	Species   string           `json:"species"`
	Timestamp domain.Timestamp `json:"timestamp"`
}

// EggHatchedPayloadV1 is the typed payload for egg hatched events
type EggHatchedPayloadV1 struct {
	IncubatorID int              `json:"incubator_id"`
	Timestamp   domain.Timestamp `json:"timestamp"`
}

// SleepCompletedPayloadV1 is the typed payload for sleep completed events
type SleepCompletedPayloadV1 struct {
	SessionID    string           `json:"session_id"`
	From         domain.Timestamp `json:"from"`
	To           domain.Timestamp `json:"to"`
	TicksSkipped int64            `json:"ticks_skipped"`
}

// SavePayloadV1 is the typed payload for save, load and save failure events
type SavePayloadV1 struct {
	Slot      string           `json:"slot"`
	Timestamp domain.Timestamp `json:"timestamp"`
	Error     string           `json:"error,omitempty"`
	At        time.Time        `json:"at"`
}

// Type-safe event constructors

// NewDayStartedEvent creates a new day started event
func NewDayStartedEvent(day uint32, cleared int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DayStarted,
		Payload: DayStartedPayloadV1{Day: day, RelationshipsCleared: cleared},
	}
}

// NewItemsShippedEvent creates a new shipping payout event
func NewItemsShippedEvent(day uint32, items map[string]int, earned int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemsShipped,
		Payload: ItemsShippedPayloadV1{Day: day, Items: items, MoneyEarned: earned},
	}
}

// NewCropEvent creates a crop matured or wilted event
func NewCropEvent(eventType Type, crop domain.Crop, ts domain.Timestamp) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: CropPayloadV1{PlotID: crop.PlotID, Species: crop.Species, Timestamp: ts},
	}
}

// NewEggHatchedEvent creates a new egg hatched event
func NewEggHatchedEvent(incubatorID int, ts domain.Timestamp) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EggHatched,
		Payload: EggHatchedPayloadV1{IncubatorID: incubatorID, Timestamp: ts},
	}
}

// NewSleepCompletedEvent creates a new sleep completed event
func NewSleepCompletedEvent(sessionID string, from, to domain.Timestamp) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SleepCompleted,
		Payload: SleepCompletedPayloadV1{
			SessionID:    sessionID,
			From:         from,
			To:           to,
			TicksSkipped: to.MinutesSince(from),
		},
		Metadata: map[string]interface{}{
			"session_id": sessionID,
		},
	}
}

// NewSaveEvent creates a save, load or save failure event. A non-nil err is
// recorded in the payload.
func NewSaveEvent(eventType Type, slot string, ts domain.Timestamp, err error) Event {
	payload := SavePayloadV1{Slot: slot, Timestamp: ts, At: time.Now().UTC()}
	if err != nil {
		payload.Error = err.Error()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: payload,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the publishing side of a bus
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Discard is a Publisher that drops every event
type Discard struct{}

// Publish drops the event
func (Discard) Publish(context.Context, Event) error { return nil }
