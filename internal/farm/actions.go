package farm

import (
	"context"
	"fmt"
	"slices"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/logger"
)

// Till turns soil into farmable land. Tilling a plot with a wilted crop
// digs the crop up.
func (f *Farm) Till(plotID int) error {
	plot, err := f.plot(plotID)
	if err != nil {
		return err
	}
	if plot.Obstacle != domain.ObstacleNone {
		return fmt.Errorf("%w: plot %d has %s", domain.ErrPlotObstructed, plotID, plot.Obstacle)
	}
	if i := f.cropIndex(plotID); i >= 0 {
		if !f.crops[i].IsWilted() {
			return fmt.Errorf("%w: plot %d", domain.ErrPlotOccupied, plotID)
		}
		f.crops = slices.Delete(f.crops, i, i+1)
	}
	if plot.Status == domain.LandStatusSoil {
		plot.Status = domain.LandStatusUnwatered
	}
	return nil
}

// Water marks tilled land as watered at ts
func (f *Farm) Water(plotID int, ts domain.Timestamp) error {
	plot, err := f.plot(plotID)
	if err != nil {
		return err
	}
	if plot.Status == domain.LandStatusSoil {
		return fmt.Errorf("%w: plot %d", domain.ErrPlotNotTilled, plotID)
	}
	plot.Status = domain.LandStatusWatered
	plot.LastWatered = ts
	return nil
}

// Plant puts a new seed of the species on a tilled, empty plot. The crop
// starts at full health.
func (f *Farm) Plant(plotID int, speciesID string) (domain.Crop, error) {
	plot, err := f.plot(plotID)
	if err != nil {
		return domain.Crop{}, err
	}
	if plot.Status == domain.LandStatusSoil {
		return domain.Crop{}, fmt.Errorf("%w: plot %d", domain.ErrPlotNotTilled, plotID)
	}
	if plot.Obstacle != domain.ObstacleNone {
		return domain.Crop{}, fmt.Errorf("%w: plot %d has %s", domain.ErrPlotObstructed, plotID, plot.Obstacle)
	}
	if f.cropIndex(plotID) >= 0 {
		return domain.Crop{}, fmt.Errorf("%w: plot %d", domain.ErrPlotOccupied, plotID)
	}
	sp, err := f.catalog.Species(speciesID)
	if err != nil {
		return domain.Crop{}, err
	}

	crop := domain.Crop{
		PlotID:  plotID,
		Species: sp.ID,
		Health:  sp.MaxHealth(),
		State:   domain.CropStateSeed,
	}
	f.crops = append(f.crops, crop)
	return crop, nil
}

// Harvest picks a mature crop and returns the produce item id. Regrowable
// species fall back to growing and need DaysToRegrow more watered days;
// others leave the plot.
func (f *Farm) Harvest(ctx context.Context, plotID int) (string, error) {
	if _, err := f.plot(plotID); err != nil {
		return "", err
	}
	i := f.cropIndex(plotID)
	if i < 0 || f.crops[i].State != domain.CropStateMature {
		return "", fmt.Errorf("%w: plot %d", domain.ErrNothingToHarvest, plotID)
	}
	crop := &f.crops[i]
	sp, err := f.catalog.Species(crop.Species)
	if err != nil {
		return "", err
	}

	if sp.Regrowable {
		crop.State = domain.CropStateGrowing
		crop.Growth = max(sp.GrowthRequired()-domain.DaysToMinutes(sp.DaysToRegrow), 0)
	} else {
		f.crops = slices.Delete(f.crops, i, i+1)
	}

	logger.FromContext(ctx).Debug(LogMsgCropHarvested, "plot_id", plotID, "species", sp.ID, "regrows", sp.Regrowable)
	return sp.ProduceItem, nil
}

// ClearObstacle removes weeds, rocks or wood from a plot
func (f *Farm) ClearObstacle(plotID int) (domain.ObstacleStatus, error) {
	plot, err := f.plot(plotID)
	if err != nil {
		return domain.ObstacleNone, err
	}
	cleared := plot.Obstacle
	plot.Obstacle = domain.ObstacleNone
	return cleared, nil
}

// PlaceObstacle drops debris on an empty plot
func (f *Farm) PlaceObstacle(plotID int, obstacle domain.ObstacleStatus) error {
	plot, err := f.plot(plotID)
	if err != nil {
		return err
	}
	if f.cropIndex(plotID) >= 0 {
		return fmt.Errorf("%w: plot %d", domain.ErrPlotOccupied, plotID)
	}
	plot.Obstacle = obstacle
	return nil
}
