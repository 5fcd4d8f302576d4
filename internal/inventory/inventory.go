// Package inventory holds the player's tool and item slots.
package inventory

import (
	"fmt"
	"sync"

	"github.com/osse101/farmstead/internal/domain"
)

// ItemCatalog resolves item definitions
type ItemCatalog interface {
	Item(id string) (domain.ItemDefinition, error)
}

// Inventory is a fixed-size slot array per category plus one equipped slot
// per category. Equipped slots hold items outside the arrays.
type Inventory struct {
	mu           sync.RWMutex
	catalog      ItemCatalog
	tools        []domain.ItemSlot
	items        []domain.ItemSlot
	equippedTool domain.ItemSlot
	equippedItem domain.ItemSlot
}

// New creates an empty inventory with the given slot counts
func New(toolSlots, itemSlots int, catalog ItemCatalog) *Inventory {
	return &Inventory{
		catalog: catalog,
		tools:   make([]domain.ItemSlot, toolSlots),
		items:   make([]domain.ItemSlot, itemSlots),
	}
}

// Slots returns a copy of the slot array for the category
func (inv *Inventory) Slots(t domain.InventoryType) []domain.ItemSlot {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return append([]domain.ItemSlot(nil), *inv.slots(t)...)
}

// Equipped returns the equipped slot for the category
func (inv *Inventory) Equipped(t domain.InventoryType) domain.ItemSlot {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return *inv.equipped(t)
}

// View returns the full inventory read model
func (inv *Inventory) View() domain.InventoryView {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return domain.InventoryView{
		ToolSlots:    append([]domain.ItemSlot(nil), inv.tools...),
		ItemSlots:    append([]domain.ItemSlot(nil), inv.items...),
		EquippedTool: inv.equippedTool,
		EquippedItem: inv.equippedItem,
	}
}

// Validate checks that saved slots match the configured shape and hold
// known items of the right category in sane quantities
func (inv *Inventory) Validate(tools []domain.ItemSlot, equippedTool domain.ItemSlot, items []domain.ItemSlot, equippedItem domain.ItemSlot) error {
	inv.mu.RLock()
	toolSlots, itemSlots := len(inv.tools), len(inv.items)
	inv.mu.RUnlock()

	if len(tools) != toolSlots {
		return fmt.Errorf("%w: %d tool slots, want %d", domain.ErrDeserializationMismatch, len(tools), toolSlots)
	}
	if len(items) != itemSlots {
		return fmt.Errorf("%w: %d item slots, want %d", domain.ErrDeserializationMismatch, len(items), itemSlots)
	}
	if err := inv.validateSlots(domain.InventoryTypeTool, tools, equippedTool); err != nil {
		return err
	}
	return inv.validateSlots(domain.InventoryTypeItem, items, equippedItem)
}

func (inv *Inventory) validateSlots(t domain.InventoryType, slots []domain.ItemSlot, equipped domain.ItemSlot) error {
	if err := inv.validateSlot(t, equipped); err != nil {
		return fmt.Errorf("equipped %s: %w", t, err)
	}
	for i, s := range slots {
		if err := inv.validateSlot(t, s); err != nil {
			return fmt.Errorf("%s slot %d: %w", t, i, err)
		}
	}
	return nil
}

func (inv *Inventory) validateSlot(t domain.InventoryType, s domain.ItemSlot) error {
	if s.ItemID == "" {
		if s.Quantity != 0 {
			return fmt.Errorf("%w: empty slot with quantity %d", domain.ErrDeserializationMismatch, s.Quantity)
		}
		return nil
	}
	if s.Quantity <= 0 || s.Quantity > MaxStack {
		return fmt.Errorf("%w: %d of %s", domain.ErrDeserializationMismatch, s.Quantity, s.ItemID)
	}
	def, err := inv.catalog.Item(s.ItemID)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDeserializationMismatch, err)
	}
	if def.Type != t {
		return fmt.Errorf("%w: %s is a %s", domain.ErrDeserializationMismatch, s.ItemID, def.Type)
	}
	return nil
}

// Load replaces every slot. The arrays must match the configured shape.
func (inv *Inventory) Load(tools []domain.ItemSlot, equippedTool domain.ItemSlot, items []domain.ItemSlot, equippedItem domain.ItemSlot) error {
	if err := inv.Validate(tools, equippedTool, items, equippedItem); err != nil {
		return err
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	copy(inv.tools, tools)
	copy(inv.items, items)
	inv.equippedTool = equippedTool
	inv.equippedItem = equippedItem
	return nil
}

// Add puts quantity of the item into the inventory, stacking onto the
// equipped slot or an existing stack first and then the first empty slot
func (inv *Inventory) Add(itemID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	def, err := inv.catalog.Item(itemID)
	if err != nil {
		return err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if eq := inv.equipped(def.Type); eq.ItemID == itemID && eq.Quantity+quantity <= MaxStack {
		eq.Quantity += quantity
		return nil
	}

	slots := *inv.slots(def.Type)
	empty := -1
	for i := range slots {
		if slots[i].ItemID == itemID && slots[i].Quantity+quantity <= MaxStack {
			slots[i].Quantity += quantity
			return nil
		}
		if empty < 0 && slots[i].IsEmpty() {
			empty = i
		}
	}
	if empty < 0 {
		return fmt.Errorf("%w: no free %s slot for %s", domain.ErrInventoryFull, def.Type, itemID)
	}
	slots[empty] = domain.ItemSlot{ItemID: itemID, Quantity: quantity}
	return nil
}

// Remove takes quantity of the item out, drawing from the equipped slot
// first. Nothing changes if the inventory holds too few.
func (inv *Inventory) Remove(itemID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	def, err := inv.catalog.Item(itemID)
	if err != nil {
		return err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if have := inv.count(def.Type, itemID); have < quantity {
		return fmt.Errorf("%w: have %d %s, need %d", domain.ErrInsufficientQuantity, have, itemID, quantity)
	}

	remaining := quantity
	take := func(s *domain.ItemSlot) {
		if s.ItemID != itemID || remaining == 0 {
			return
		}
		n := min(s.Quantity, remaining)
		s.Quantity -= n
		remaining -= n
		if s.Quantity == 0 {
			*s = domain.ItemSlot{}
		}
	}
	take(inv.equipped(def.Type))
	slots := *inv.slots(def.Type)
	for i := range slots {
		take(&slots[i])
	}
	return nil
}

// Count returns how many of the item the player holds
func (inv *Inventory) Count(itemID string) int {
	def, err := inv.catalog.Item(itemID)
	if err != nil {
		return 0
	}
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.count(def.Type, itemID)
}

// Equip swaps slot index of the category with the equipped slot
func (inv *Inventory) Equip(t domain.InventoryType, index int) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	slots := *inv.slots(t)
	if index < 0 || index >= len(slots) {
		return fmt.Errorf("%w: slot %d", domain.ErrInvalidInput, index)
	}
	eq := inv.equipped(t)
	slots[index], *eq = *eq, slots[index]
	return nil
}

func (inv *Inventory) count(t domain.InventoryType, itemID string) int {
	n := 0
	if eq := inv.equipped(t); eq.ItemID == itemID {
		n += eq.Quantity
	}
	for _, s := range *inv.slots(t) {
		if s.ItemID == itemID {
			n += s.Quantity
		}
	}
	return n
}

func (inv *Inventory) slots(t domain.InventoryType) *[]domain.ItemSlot {
	if t == domain.InventoryTypeTool {
		return &inv.tools
	}
	return &inv.items
}

func (inv *Inventory) equipped(t domain.InventoryType) *domain.ItemSlot {
	if t == domain.InventoryTypeTool {
		return &inv.equippedTool
	}
	return &inv.equippedItem
}
