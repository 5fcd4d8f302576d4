package world

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/event"
	"github.com/osse101/farmstead/internal/farm"
)

func TestExportImportExport_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld(t, domain.StartOfGame(), farm.DefaultRules())
	w.populate(t)
	require.NoError(t, w.clock.Skip(ctx, w.clock.Now().AddMinutes(90)))

	first := w.coord.ExportSnapshot()

	// move the live world on so the import has something to overwrite
	require.NoError(t, w.clock.Skip(ctx, w.clock.Now().AddMinutes(domain.MinutesPerDay)))
	require.NoError(t, w.inventory.Add("potato", 3))
	require.NoError(t, w.wallet.Earn(1000))

	require.NoError(t, w.coord.ImportSnapshot(ctx, first))
	second := w.coord.ExportSnapshot()

	assert.Equal(t, first, second)
	assert.Equal(t, first.Timestamp, w.clock.Now())
}

func TestExportSnapshot_DoesNotAliasLiveState(t *testing.T) {
	w := newTestWorld(t, domain.StartOfGame(), farm.DefaultRules())
	w.populate(t)

	snap := w.coord.ExportSnapshot()
	snap.Crops[0].Growth = 999
	snap.ItemSlots[0].Quantity = 999

	assert.NotEqual(t, 999, w.farm.Crops()[0].Growth)
	assert.NotEqual(t, 999, w.inventory.Slots(domain.InventoryTypeItem)[0].Quantity)
}

func TestImportSnapshot_RejectsMismatchAndKeepsState(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld(t, domain.StartOfGame(), farm.DefaultRules())
	w.populate(t)
	before := w.coord.ExportSnapshot()

	tests := []struct {
		name   string
		mutate func(s *domain.Snapshot)
	}{
		{"schema version", func(s *domain.Snapshot) { s.SchemaVersion = 99 }},
		{"tool slot count", func(s *domain.Snapshot) { s.ToolSlots = append(s.ToolSlots, domain.ItemSlot{}) }},
		{"item slot count", func(s *domain.Snapshot) { s.ItemSlots = s.ItemSlots[:1] }},
		{"dangling crop", func(s *domain.Snapshot) { s.Crops[0].PlotID = 42 }},
		{"unknown species", func(s *domain.Snapshot) { s.Crops[0].Species = "moonflower" }},
		{"timestamp", func(s *domain.Snapshot) { s.Timestamp.Minute = 75 }},
		{"day zero", func(s *domain.Snapshot) { s.Timestamp.Day = 0 }},
		{"negative money", func(s *domain.Snapshot) { s.Money = -1 }},
		{"duplicate npc", func(s *domain.Snapshot) { s.Relationships = append(s.Relationships, s.Relationships[0]) }},
		{"missing incubator", func(s *domain.Snapshot) { s.Incubation[0].IncubatorID = 100 }},
		{"negative equipped tool", func(s *domain.Snapshot) { s.EquippedTool = domain.ItemSlot{Quantity: -7} }},
		{"unknown equipped item", func(s *domain.Snapshot) { s.EquippedItem = domain.ItemSlot{ItemID: "no_such_item", Quantity: 3} }},
		{"unknown item in a slot", func(s *domain.Snapshot) { s.ItemSlots[0] = domain.ItemSlot{ItemID: "ghost", Quantity: 2} }},
		{"tool in an item slot", func(s *domain.Snapshot) { s.ItemSlots[0] = domain.ItemSlot{ItemID: "hoe", Quantity: 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := before.Clone()
			bad.Money = 12345
			tt.mutate(bad)

			err := w.coord.ImportSnapshot(ctx, bad)

			assert.ErrorIs(t, err, domain.ErrDeserializationMismatch)
			assert.Equal(t, before, w.coord.ExportSnapshot())
		})
	}

	assert.ErrorIs(t, w.coord.ImportSnapshot(ctx, nil), domain.ErrDeserializationMismatch)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld(t, domain.StartOfGame(), farm.DefaultRules())
	w.populate(t)

	require.NoError(t, w.coord.Save(ctx))
	saved := w.coord.ExportSnapshot()

	require.NoError(t, w.clock.Skip(ctx, w.clock.Now().AddMinutes(600)))
	require.NoError(t, w.coord.Load(ctx))

	assert.Equal(t, saved, w.coord.ExportSnapshot())
	assert.Equal(t, 1, w.events.count(event.GameSaved))
	assert.Equal(t, 1, w.events.count(event.GameLoaded))
}

func TestSave_FailureIsSurfaced(t *testing.T) {
	ctx := context.Background()
	w := newTestWorld(t, domain.StartOfGame(), farm.DefaultRules())
	diskFull := errors.New("disk full")
	w.store.err = diskFull

	err := w.coord.Save(ctx)

	assert.ErrorIs(t, err, diskFull)
	assert.Equal(t, 1, w.events.count(event.SaveFailed))
	assert.Equal(t, 0, w.events.count(event.GameSaved))
}

func TestLoad_MissingSlot(t *testing.T) {
	w := newTestWorld(t, domain.StartOfGame(), farm.DefaultRules())

	err := w.coord.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	assert.Equal(t, 0, w.events.count(event.SaveFailed))
}
