// Package shipping implements the shipping bin: items dropped in during the
// day are sold at the ship hour.
package shipping

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/logger"
)

// DefaultShipHour is the hour the bin is emptied
const DefaultShipHour = 18

// Log messages
const (
	LogMsgItemsShipped   = "Shipping bin emptied"
	LogMsgUnpricedItem   = "Shipped item has no price"
	LogMsgPublishFailure = "Failed to publish shipping event"
)

// PriceList resolves sell prices
type PriceList interface {
	SellPrice(itemID string) (int, error)
}

// Earner receives shipping income
type Earner interface {
	Earn(amount int) error
}

// TimeSource reports the current game time
type TimeSource interface {
	Now() domain.Timestamp
}

// Bin collects items until they ship
type Bin struct {
	mu        sync.Mutex
	pending   map[string]int
	prices    PriceList
	wallet    Earner
	publisher event.Publisher
	clock     TimeSource
}

// NewBin creates an empty shipping bin
func NewBin(prices PriceList, wallet Earner, publisher event.Publisher, clock TimeSource) *Bin {
	if publisher == nil {
		publisher = event.Discard{}
	}
	return &Bin{
		pending:   make(map[string]int),
		prices:    prices,
		wallet:    wallet,
		publisher: publisher,
		clock:     clock,
	}
}

// Add queues quantity of an item for sale
func (b *Bin) Add(itemID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if _, err := b.prices.SellPrice(itemID); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[itemID] += quantity
	return nil
}

// Pending returns a copy of the items waiting to ship
func (b *Bin) Pending() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]int, len(b.pending))
	for k, v := range b.pending {
		out[k] = v
	}
	return out
}

// ShipItems sells everything in the bin and pays the wallet. An empty bin
// is a no-op.
func (b *Bin) ShipItems(ctx context.Context) error {
	b.mu.Lock()
	if len(b.pending) == 0 {
		b.mu.Unlock()
		return nil
	}
	shipped := b.pending
	b.pending = make(map[string]int)
	b.mu.Unlock()

	log := logger.FromContext(ctx)
	total := 0
	for itemID, qty := range shipped {
		price, err := b.prices.SellPrice(itemID)
		if err != nil {
			log.Warn(LogMsgUnpricedItem, "item", itemID, "error", err)
			continue
		}
		total += price * qty
	}

	if err := b.wallet.Earn(total); err != nil {
		return fmt.Errorf("failed to pay shipping income: %w", err)
	}

	ts := b.clock.Now()
	log.Info(LogMsgItemsShipped, "items", len(shipped), "earned", total, "day", ts.Day)
	if err := b.publisher.Publish(ctx, event.NewItemsShippedEvent(ts.Day, shipped, total)); err != nil {
		log.Warn(LogMsgPublishFailure, "error", err)
	}
	return nil
}
