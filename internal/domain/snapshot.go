package domain

import "time"

// SnapshotSchemaVersion is the current save format version.
// Increment this when the snapshot layout changes so stale saves are rejected.
const SnapshotSchemaVersion = 1

// DefaultSaveSlot is the slot used when none is configured
const DefaultSaveSlot = "default"

// Snapshot is the total serialized state of the world and the player.
// Import replaces live state with it wholesale.
type Snapshot struct {
	SchemaVersion int                  `json:"schema_version"`
	LandPlots     []LandPlot           `json:"land_plots"`
	Crops         []Crop               `json:"crops"`
	ToolSlots     []ItemSlot           `json:"tool_slots"`
	ItemSlots     []ItemSlot           `json:"item_slots"`
	EquippedTool  ItemSlot             `json:"equipped_tool"`
	EquippedItem  ItemSlot             `json:"equipped_item"`
	Timestamp     Timestamp            `json:"timestamp"`
	Money         int                  `json:"money"`
	Relationships []RelationshipRecord `json:"relationships"`
	Incubation    []EggIncubation      `json:"incubation"`
}

// Clone returns a deep copy of the snapshot. Nil slices become empty slices
// so a cloned snapshot always serializes the same way.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.LandPlots = append(make([]LandPlot, 0, len(s.LandPlots)), s.LandPlots...)
	out.Crops = append(make([]Crop, 0, len(s.Crops)), s.Crops...)
	out.ToolSlots = append(make([]ItemSlot, 0, len(s.ToolSlots)), s.ToolSlots...)
	out.ItemSlots = append(make([]ItemSlot, 0, len(s.ItemSlots)), s.ItemSlots...)
	out.Relationships = append(make([]RelationshipRecord, 0, len(s.Relationships)), s.Relationships...)
	out.Incubation = append(make([]EggIncubation, 0, len(s.Incubation)), s.Incubation...)
	return &out
}

// SaveRecord is a stored snapshot with storage metadata
type SaveRecord struct {
	Slot      string    `json:"slot"`
	Snapshot  *Snapshot `json:"snapshot"`
	UpdatedAt time.Time `json:"updated_at"`
}
