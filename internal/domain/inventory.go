package domain

// InventoryType selects one of the player's slot arrays
type InventoryType string

const (
	InventoryTypeTool InventoryType = "tool"
	InventoryTypeItem InventoryType = "item"
)

// ItemSlot is a single inventory slot. An empty slot has no ItemID.
type ItemSlot struct {
	ItemID   string `json:"item_id,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}

// IsEmpty reports whether the slot holds nothing
func (s ItemSlot) IsEmpty() bool {
	return s.ItemID == "" || s.Quantity <= 0
}

// Stackable reports whether other can be merged into this slot
func (s ItemSlot) Stackable(other ItemSlot) bool {
	return !s.IsEmpty() && s.ItemID == other.ItemID
}

// ItemDefinition describes an item the player can hold or ship
type ItemDefinition struct {
	ID          string        `json:"id" yaml:"id" validate:"required"`
	DisplayName string        `json:"display_name" yaml:"display_name"`
	Type        InventoryType `json:"type" yaml:"type" validate:"oneof=tool item"`
	SellPrice   int           `json:"sell_price" yaml:"sell_price" validate:"gte=0"`
	BuyPrice    int           `json:"buy_price,omitempty" yaml:"buy_price,omitempty" validate:"gte=0"`
}

// InventoryView is the read model returned by status endpoints
type InventoryView struct {
	ToolSlots    []ItemSlot `json:"tool_slots"`
	ItemSlots    []ItemSlot `json:"item_slots"`
	EquippedTool ItemSlot   `json:"equipped_tool"`
	EquippedItem ItemSlot   `json:"equipped_item"`
}
