package world

import (
	"context"
	"fmt"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/logger"
)

// Status is a read model of the whole world
type Status struct {
	Timestamp       domain.Timestamp            `json:"timestamp"`
	Location        domain.Location             `json:"location"`
	Money           int                         `json:"money"`
	Farm            domain.FarmSummary          `json:"farm"`
	Inventory       domain.InventoryView        `json:"inventory"`
	Relationships   []domain.RelationshipRecord `json:"relationships"`
	Incubation      []domain.EggIncubation      `json:"incubation"`
	PendingShipment map[string]int              `json:"pending_shipment"`
}

// Status returns the current read model
func (c *Coordinator) Status() Status {
	return Status{
		Timestamp:       c.Clock.Now(),
		Location:        c.Location.Current(),
		Money:           c.Wallet.Money(),
		Farm:            c.Farm.Summary(),
		Inventory:       c.Inventory.View(),
		Relationships:   c.Relationships.Records(),
		Incubation:      c.Incubator.Eggs(),
		PendingShipment: c.Shipper.Pending(),
	}
}

// MoveTo changes the player's location. Arriving on a farm with no data
// creates the land plots.
func (c *Coordinator) MoveTo(ctx context.Context, loc domain.Location) error {
	prev, err := c.Location.MoveTo(loc)
	if err != nil {
		return err
	}
	if loc == domain.LocationFarm {
		c.Farm.Init(ctx, c.cfg.PlotCount)
	}
	logger.FromContext(ctx).Info(LogMsgLocationChanged, "from", prev, "to", loc)
	return nil
}

// Till prepares a plot for planting
func (c *Coordinator) Till(_ context.Context, plotID int) error {
	return c.Farm.Till(plotID)
}

// Water waters a tilled plot at the current time
func (c *Coordinator) Water(_ context.Context, plotID int) error {
	return c.Farm.Water(plotID, c.Clock.Now())
}

// Plant sows one seed item from the inventory on a plot
func (c *Coordinator) Plant(_ context.Context, plotID int, seedItem string) (domain.Crop, error) {
	sp, err := c.Catalog.SpeciesForSeed(seedItem)
	if err != nil {
		return domain.Crop{}, err
	}
	if c.Inventory.Count(seedItem) < 1 {
		return domain.Crop{}, fmt.Errorf("%w: no %s", domain.ErrInsufficientQuantity, seedItem)
	}
	crop, err := c.Farm.Plant(plotID, sp.ID)
	if err != nil {
		return domain.Crop{}, err
	}
	if err := c.Inventory.Remove(seedItem, 1); err != nil {
		return domain.Crop{}, err
	}
	return crop, nil
}

// Harvest picks a mature crop into the inventory. If the produce does not
// fit the farm is left as it was.
func (c *Coordinator) Harvest(ctx context.Context, plotID int) (string, error) {
	plots, crops := c.Farm.Plots(), c.Farm.Crops()
	produce, err := c.Farm.Harvest(ctx, plotID)
	if err != nil {
		return "", err
	}
	if err := c.Inventory.Add(produce, 1); err != nil {
		logger.FromContext(ctx).Warn(LogMsgHarvestRollback, "plot_id", plotID, "error", err)
		c.Farm.Replace(plots, crops)
		return "", err
	}
	return produce, nil
}

// ClearObstacle removes debris from a plot
func (c *Coordinator) ClearObstacle(_ context.Context, plotID int) (domain.ObstacleStatus, error) {
	return c.Farm.ClearObstacle(plotID)
}

// Equip selects the active tool or item slot
func (c *Coordinator) Equip(_ context.Context, t domain.InventoryType, index int) (domain.ItemSlot, error) {
	if err := c.Inventory.Equip(t, index); err != nil {
		return domain.ItemSlot{}, err
	}
	return c.Inventory.Equipped(t), nil
}

// Ship moves items from the inventory into the shipping bin
func (c *Coordinator) Ship(_ context.Context, itemID string, quantity int) error {
	if err := c.Inventory.Remove(itemID, quantity); err != nil {
		return err
	}
	if err := c.Shipper.Add(itemID, quantity); err != nil {
		// the items were just removed so they fit back
		_ = c.Inventory.Add(itemID, quantity)
		return err
	}
	return nil
}

// Buy purchases items at their catalog buy price
func (c *Coordinator) Buy(_ context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	def, err := c.Catalog.Item(itemID)
	if err != nil {
		return err
	}
	if def.BuyPrice <= 0 {
		return fmt.Errorf("%w: %s is not for sale", domain.ErrInvalidInput, itemID)
	}
	if err := c.Wallet.Spend(def.BuyPrice * quantity); err != nil {
		return err
	}
	if err := c.Inventory.Add(itemID, quantity); err != nil {
		if refundErr := c.Wallet.Earn(def.BuyPrice * quantity); refundErr != nil {
			return fmt.Errorf("%w (refund failed: %v)", err, refundErr)
		}
		return err
	}
	return nil
}

// Talk chats with an NPC
func (c *Coordinator) Talk(_ context.Context, npcID string) (domain.RelationshipRecord, error) {
	return c.Relationships.Talk(npcID)
}

// Gift gives one item from the inventory to an NPC
func (c *Coordinator) Gift(_ context.Context, npcID, itemID string) (domain.RelationshipRecord, error) {
	if c.Inventory.Count(itemID) < 1 {
		return domain.RelationshipRecord{}, fmt.Errorf("%w: no %s", domain.ErrInsufficientQuantity, itemID)
	}
	record, err := c.Relationships.Gift(npcID)
	if err != nil {
		return domain.RelationshipRecord{}, err
	}
	if err := c.Inventory.Remove(itemID, 1); err != nil {
		return domain.RelationshipRecord{}, err
	}
	return record, nil
}

// Incubate moves an egg from the inventory into an incubator
func (c *Coordinator) Incubate(ctx context.Context, incubatorID int) (domain.EggIncubation, error) {
	if c.Inventory.Count(EggItem) < 1 {
		return domain.EggIncubation{}, fmt.Errorf("%w: no %s", domain.ErrInsufficientQuantity, EggItem)
	}
	egg, err := c.Incubator.Incubate(ctx, incubatorID)
	if err != nil {
		return domain.EggIncubation{}, err
	}
	if err := c.Inventory.Remove(EggItem, 1); err != nil {
		return domain.EggIncubation{}, err
	}
	return egg, nil
}
