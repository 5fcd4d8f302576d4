package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/osse101/farmstead/internal/domain"
)

// MoveRequest changes the player's scene
type MoveRequest struct {
	Location string `json:"location" validate:"required,location"`
}

// EquipRequest swaps an inventory slot into the equipped slot
type EquipRequest struct {
	Type  string `json:"type" validate:"required,inventory_type"`
	Index *int   `json:"index" validate:"required,gte=0"`
}

// TradeRequest ships or buys items
type TradeRequest struct {
	ItemID   string `json:"item_id" validate:"required,slug,max=64"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=999"`
}

// NPCRequest targets a villager
type NPCRequest struct {
	NPCID string `json:"npc_id" validate:"required,slug,max=64"`
}

// GiftRequest gives one item to a villager
type GiftRequest struct {
	NPCID  string `json:"npc_id" validate:"required,slug,max=64"`
	ItemID string `json:"item_id" validate:"required,slug,max=64"`
}

// IncubateRequest places an egg in an incubator
type IncubateRequest struct {
	IncubatorID *int `json:"incubator_id" validate:"required,gte=0"`
}

// HandleGetStatus returns the current world read model
func (h *GameHandlers) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	readWorld(w, r, h.Executor, "Get status", h.World.Status)
}

// HandleMove moves the player to another scene
func (h *GameHandlers) HandleMove(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Move",
		func(ctx context.Context, req MoveRequest) (domain.Location, error) {
			loc := domain.Location(strings.ToLower(req.Location))
			return loc, h.World.MoveTo(ctx, loc)
		},
		func(loc domain.Location) interface{} {
			return DataResponse{Message: MsgLocationChanged, Data: map[string]domain.Location{"location": loc}}
		})
}

// HandleEquip swaps a slot into the equipped tool or item
func (h *GameHandlers) HandleEquip(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Equip",
		func(ctx context.Context, req EquipRequest) (domain.ItemSlot, error) {
			return h.World.Equip(ctx, domain.InventoryType(req.Type), *req.Index)
		},
		func(slot domain.ItemSlot) interface{} { return DataResponse{Data: slot} })
}

// HandleShip puts items in the shipping bin for the next payout
func (h *GameHandlers) HandleShip(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Ship items",
		func(ctx context.Context, req TradeRequest) (struct{}, error) {
			return struct{}{}, h.World.Ship(ctx, req.ItemID, req.Quantity)
		},
		func(struct{}) interface{} { return SuccessResponse{Message: MsgItemsShipped} })
}

// HandleBuy buys items at their catalog price
func (h *GameHandlers) HandleBuy(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Buy items",
		func(ctx context.Context, req TradeRequest) (struct{}, error) {
			return struct{}{}, h.World.Buy(ctx, req.ItemID, req.Quantity)
		},
		func(struct{}) interface{} { return SuccessResponse{Message: MsgItemsBought} })
}

// HandleTalk chats with a villager once per day
func (h *GameHandlers) HandleTalk(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Talk",
		func(ctx context.Context, req NPCRequest) (domain.RelationshipRecord, error) {
			return h.World.Talk(ctx, req.NPCID)
		},
		func(rec domain.RelationshipRecord) interface{} { return DataResponse{Data: rec} })
}

// HandleGift gives a villager one item once per day
func (h *GameHandlers) HandleGift(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Gift",
		func(ctx context.Context, req GiftRequest) (domain.RelationshipRecord, error) {
			return h.World.Gift(ctx, req.NPCID, req.ItemID)
		},
		func(rec domain.RelationshipRecord) interface{} { return DataResponse{Data: rec} })
}

// HandleIncubate places an egg from the inventory in an incubator
func (h *GameHandlers) HandleIncubate(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Incubate",
		func(ctx context.Context, req IncubateRequest) (domain.EggIncubation, error) {
			return h.World.Incubate(ctx, *req.IncubatorID)
		},
		func(egg domain.EggIncubation) interface{} { return DataResponse{Data: egg} })
}

