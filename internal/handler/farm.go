package handler

import (
	"context"
	"net/http"

	"github.com/osse101/farmstead/internal/domain"
)

// PlotRequest targets a land plot by id
type PlotRequest struct {
	PlotID *int `json:"plot_id" validate:"required,gte=0"`
}

// PlantRequest plants a seed item on a plot
type PlantRequest struct {
	PlotID *int   `json:"plot_id" validate:"required,gte=0"`
	Seed   string `json:"seed" validate:"required,slug,max=64"`
}

// HarvestResponse names the item added to the inventory
type HarvestResponse struct {
	PlotID int    `json:"plot_id"`
	ItemID string `json:"item_id"`
}

// ClearResponse names the debris that was removed
type ClearResponse struct {
	PlotID  int                   `json:"plot_id"`
	Cleared domain.ObstacleStatus `json:"cleared"`
}

// HandleTill prepares a plot for planting
func (h *GameHandlers) HandleTill(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Till plot",
		func(ctx context.Context, req PlotRequest) (struct{}, error) {
			return struct{}{}, h.World.Till(ctx, *req.PlotID)
		},
		func(struct{}) interface{} { return SuccessResponse{Message: MsgPlotTilled} })
}

// HandleWater waters a tilled plot
func (h *GameHandlers) HandleWater(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Water plot",
		func(ctx context.Context, req PlotRequest) (struct{}, error) {
			return struct{}{}, h.World.Water(ctx, *req.PlotID)
		},
		func(struct{}) interface{} { return SuccessResponse{Message: MsgPlotWatered} })
}

// HandlePlant consumes one seed item and plants its crop
func (h *GameHandlers) HandlePlant(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Plant",
		func(ctx context.Context, req PlantRequest) (domain.Crop, error) {
			return h.World.Plant(ctx, *req.PlotID, req.Seed)
		},
		func(crop domain.Crop) interface{} { return DataResponse{Data: crop} })
}

// HandleHarvest picks a mature crop into the inventory
func (h *GameHandlers) HandleHarvest(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Harvest",
		func(ctx context.Context, req PlotRequest) (HarvestResponse, error) {
			item, err := h.World.Harvest(ctx, *req.PlotID)
			return HarvestResponse{PlotID: *req.PlotID, ItemID: item}, err
		},
		func(res HarvestResponse) interface{} { return DataResponse{Data: res} })
}

// HandleClearObstacle removes debris from a plot
func (h *GameHandlers) HandleClearObstacle(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Clear obstacle",
		func(ctx context.Context, req PlotRequest) (ClearResponse, error) {
			cleared, err := h.World.ClearObstacle(ctx, *req.PlotID)
			return ClearResponse{PlotID: *req.PlotID, Cleared: cleared}, err
		},
		func(res ClearResponse) interface{} { return DataResponse{Data: res} })
}
