package world

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/logger"
)

// ExportSnapshot gathers the total world and player state. It never fails:
// a farm that was never initialized exports as empty collections.
func (c *Coordinator) ExportSnapshot() *domain.Snapshot {
	s := &domain.Snapshot{
		SchemaVersion: domain.SnapshotSchemaVersion,
		LandPlots:     c.Farm.Plots(),
		Crops:         c.Farm.Crops(),
		ToolSlots:     c.Inventory.Slots(domain.InventoryTypeTool),
		ItemSlots:     c.Inventory.Slots(domain.InventoryTypeItem),
		EquippedTool:  c.Inventory.Equipped(domain.InventoryTypeTool),
		EquippedItem:  c.Inventory.Equipped(domain.InventoryTypeItem),
		Timestamp:     c.Clock.Now(),
		Money:         c.Wallet.Money(),
		Relationships: c.Relationships.Records(),
		Incubation:    c.Incubator.Eggs(),
	}
	return s.Clone()
}

// ValidateSnapshot checks a snapshot against the current schema without
// touching live state
func (c *Coordinator) ValidateSnapshot(s *domain.Snapshot) error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", domain.ErrDeserializationMismatch)
	}
	if s.SchemaVersion != domain.SnapshotSchemaVersion {
		return fmt.Errorf("%w: schema version %d, want %d", domain.ErrDeserializationMismatch, s.SchemaVersion, domain.SnapshotSchemaVersion)
	}
	if !s.Timestamp.Valid() || s.Timestamp.Day < domain.FirstDay {
		return fmt.Errorf("%w: timestamp %s out of range", domain.ErrDeserializationMismatch, s.Timestamp)
	}
	if s.Money < 0 {
		return fmt.Errorf("%w: negative money %d", domain.ErrDeserializationMismatch, s.Money)
	}
	if err := c.Inventory.Validate(s.ToolSlots, s.EquippedTool, s.ItemSlots, s.EquippedItem); err != nil {
		return err
	}
	if err := c.Farm.Validate(s.LandPlots, s.Crops); err != nil {
		return err
	}
	if err := c.Relationships.Validate(s.Relationships); err != nil {
		return err
	}
	return c.Incubator.Validate(s.Incubation)
}

// ImportSnapshot replaces live state with s wholesale. The whole snapshot is
// validated before anything is applied; a rejected snapshot leaves the
// previous state in place.
func (c *Coordinator) ImportSnapshot(ctx context.Context, s *domain.Snapshot) error {
	log := logger.FromContext(ctx)
	if err := c.ValidateSnapshot(s); err != nil {
		log.Warn(LogMsgSnapshotRejected, "error", err)
		return err
	}

	previous := c.ExportSnapshot()
	if err := c.apply(s.Clone()); err != nil {
		log.Error(LogMsgImportRollback, "error", err)
		if restoreErr := c.apply(previous); restoreErr != nil {
			return errors.Join(err, restoreErr)
		}
		return err
	}

	log.Info(LogMsgSnapshotImported, "timestamp", s.Timestamp.String(), "plots", len(s.LandPlots), "crops", len(s.Crops))
	return nil
}

func (c *Coordinator) apply(s *domain.Snapshot) error {
	if err := c.Clock.Load(s.Timestamp); err != nil {
		return err
	}
	if err := c.Inventory.Load(s.ToolSlots, s.EquippedTool, s.ItemSlots, s.EquippedItem); err != nil {
		return err
	}
	c.Farm.Replace(s.LandPlots, s.Crops)
	if err := c.Wallet.Load(s.Money); err != nil {
		return err
	}
	if err := c.Relationships.Load(s.Relationships); err != nil {
		return err
	}
	return c.Incubator.Load(s.Incubation)
}

// Save exports the world and stores it in the configured slot. A failure is
// logged and published so clients can show it.
func (c *Coordinator) Save(ctx context.Context) error {
	snap := c.ExportSnapshot()
	if err := c.Store.Save(ctx, c.cfg.SaveSlot, snap); err != nil {
		logger.FromContext(ctx).Error(LogMsgSaveFailed, "slot", c.cfg.SaveSlot, "error", err)
		c.publish(ctx, event.NewSaveEvent(event.SaveFailed, c.cfg.SaveSlot, snap.Timestamp, err))
		return fmt.Errorf("failed to save slot %s: %w", c.cfg.SaveSlot, err)
	}
	logger.FromContext(ctx).Info(LogMsgGameSaved, "slot", c.cfg.SaveSlot, "timestamp", snap.Timestamp.String())
	c.publish(ctx, event.NewSaveEvent(event.GameSaved, c.cfg.SaveSlot, snap.Timestamp, nil))
	return nil
}

// Load reads the configured slot and imports it
func (c *Coordinator) Load(ctx context.Context) error {
	snap, err := c.Store.Load(ctx, c.cfg.SaveSlot)
	if err == nil {
		err = c.ImportSnapshot(ctx, snap)
	}
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			logger.FromContext(ctx).Error(LogMsgLoadFailed, "slot", c.cfg.SaveSlot, "error", err)
			c.publish(ctx, event.NewSaveEvent(event.SaveFailed, c.cfg.SaveSlot, c.Clock.Now(), err))
		}
		return fmt.Errorf("failed to load slot %s: %w", c.cfg.SaveSlot, err)
	}
	c.publish(ctx, event.NewSaveEvent(event.GameLoaded, c.cfg.SaveSlot, snap.Timestamp, nil))
	return nil
}

// SaveSlot returns the slot Save and Load use
func (c *Coordinator) SaveSlot() string {
	return c.cfg.SaveSlot
}
