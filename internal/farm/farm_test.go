package farm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/farmstead/internal/domain"
)

type fakeCatalog map[string]domain.CropSpecies

func (c fakeCatalog) Species(id string) (domain.CropSpecies, error) {
	sp, ok := c[id]
	if !ok {
		return domain.CropSpecies{}, domain.ErrUnknownSpecies
	}
	return sp, nil
}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		"turnip": {ID: "turnip", SeedItem: "turnip_seeds", ProduceItem: "turnip", DaysToGrow: 1, MaxHealthHours: 1},
		"tomato": {ID: "tomato", SeedItem: "tomato_seeds", ProduceItem: "tomato", DaysToGrow: 2, Regrowable: true, DaysToRegrow: 1, MaxHealthHours: 1},
	}
}

func newFarm(t *testing.T, rules Rules, plots int) *Farm {
	t.Helper()
	f := New(rules, testCatalog())
	f.Init(context.Background(), plots)
	return f
}

var t0 = domain.Timestamp{Day: 1, Hour: 6, Minute: 0}

func TestAdvance_UninitializedAndEmptyAreNoOps(t *testing.T) {
	f := New(DefaultRules(), testCatalog())

	transitions, err := f.Advance(t0)
	assert.NoError(t, err)
	assert.Nil(t, transitions)
	assert.False(t, f.Initialized())

	f.Init(context.Background(), 2)
	transitions, err = f.Advance(t0)
	assert.NoError(t, err)
	assert.Nil(t, transitions)
}

func TestAdvance_WateredCropGrowsAndNeverWilts(t *testing.T) {
	f := newFarm(t, Rules{WaterDuration: domain.MinutesPerDay * 10, DecayPerTick: 100, WiltThreshold: 0}, 1)
	require.NoError(t, f.Till(0))
	require.NoError(t, f.Water(0, t0))
	_, err := f.Plant(0, "turnip")
	require.NoError(t, err)

	ts := t0
	var matured bool
	for i := 0; i < domain.MinutesPerDay; i++ {
		ts = ts.AddMinutes(1)
		transitions, err := f.Advance(ts)
		require.NoError(t, err)
		for _, tr := range transitions {
			assert.NotEqual(t, domain.CropStateWilted, tr.Crop.State)
			if tr.Crop.State == domain.CropStateMature {
				matured = true
			}
		}
	}

	assert.True(t, matured)
	crop := f.Crops()[0]
	assert.Equal(t, domain.CropStateMature, crop.State)
	assert.Equal(t, domain.MinutesPerDay, crop.Growth)
}

func TestAdvance_SeedBecomesGrowingAtHalfway(t *testing.T) {
	f := newFarm(t, DefaultRules(), 1)
	f.Replace(
		[]domain.LandPlot{{ID: 0, Status: domain.LandStatusWatered, LastWatered: t0}},
		[]domain.Crop{{PlotID: 0, Species: "turnip", Growth: domain.MinutesPerDay/2 - 1, Health: 10, State: domain.CropStateSeed}},
	)

	transitions, err := f.Advance(t0.AddMinutes(1))

	require.NoError(t, err)
	require.Len(t, transitions, 1)
	assert.Equal(t, domain.CropStateSeed, transitions[0].From)
	assert.Equal(t, domain.CropStateGrowing, transitions[0].Crop.State)
}

func TestAdvance_LongerTicksKeepTheGameTimePace(t *testing.T) {
	for _, step := range []int{1, 15, 60} {
		f := newFarm(t, Rules{WaterDuration: domain.MinutesPerDay * 10, DecayPerTick: 1, MinutesPerTick: step}, 1)
		require.NoError(t, f.Till(0))
		require.NoError(t, f.Water(0, t0))
		_, err := f.Plant(0, "turnip")
		require.NoError(t, err)

		ts := t0
		for elapsed := 0; elapsed < domain.MinutesPerDay; elapsed += step {
			assert.NotEqual(t, domain.CropStateMature, f.Crops()[0].State, "step %d matured after %d minutes", step, elapsed)
			ts = ts.AddMinutes(step)
			_, err := f.Advance(ts)
			require.NoError(t, err)
		}

		assert.Equal(t, domain.CropStateMature, f.Crops()[0].State, "step %d", step)
		assert.Equal(t, domain.MinutesPerDay, f.Crops()[0].Growth, "step %d", step)
	}
}

func TestAdvance_DryCropDecaysPerMinuteOfGameTime(t *testing.T) {
	f := newFarm(t, Rules{WaterDuration: 60, DecayPerTick: 1, WiltThreshold: 0, MinutesPerTick: 30}, 1)
	f.Replace(
		[]domain.LandPlot{{ID: 0, Status: domain.LandStatusUnwatered}},
		[]domain.Crop{{PlotID: 0, Species: "turnip", Health: 45, State: domain.CropStateGrowing}},
	)

	_, err := f.Advance(t0.AddMinutes(30))
	require.NoError(t, err)
	assert.Equal(t, 15, f.Crops()[0].Health)
	assert.Equal(t, domain.CropStateGrowing, f.Crops()[0].State)

	_, err = f.Advance(t0.AddMinutes(60))
	require.NoError(t, err)
	assert.Equal(t, domain.CropStateWilted, f.Crops()[0].State)
}

func TestAdvance_DryCropWiltsAndStaysWilted(t *testing.T) {
	f := newFarm(t, Rules{WaterDuration: 60, DecayPerTick: 5, WiltThreshold: 0}, 1)
	f.Replace(
		[]domain.LandPlot{{ID: 0, Status: domain.LandStatusUnwatered}},
		[]domain.Crop{{PlotID: 0, Species: "turnip", Growth: 900, Health: 5, State: domain.CropStateGrowing}},
	)

	transitions, err := f.Advance(t0)
	require.NoError(t, err)
	require.Len(t, transitions, 1)
	assert.Equal(t, domain.CropStateWilted, transitions[0].Crop.State)

	for i := 1; i <= 5; i++ {
		transitions, err = f.Advance(t0.AddMinutes(i))
		require.NoError(t, err)
		assert.Empty(t, transitions)
	}

	crop := f.Crops()[0]
	assert.Equal(t, domain.CropStateWilted, crop.State)
	assert.Equal(t, 0, crop.Health)
}

func TestAdvance_DrySeedDoesNotWither(t *testing.T) {
	f := newFarm(t, Rules{WaterDuration: 60, DecayPerTick: 5, WiltThreshold: 0}, 1)
	f.Replace(
		[]domain.LandPlot{{ID: 0, Status: domain.LandStatusUnwatered}},
		[]domain.Crop{{PlotID: 0, Species: "turnip", Health: 5, State: domain.CropStateSeed}},
	)

	_, err := f.Advance(t0)
	require.NoError(t, err)

	assert.Equal(t, 5, f.Crops()[0].Health)
	assert.Equal(t, domain.CropStateSeed, f.Crops()[0].State)
}

func TestAdvance_WaterExpiresThenCropWithers(t *testing.T) {
	f := newFarm(t, Rules{WaterDuration: 2, DecayPerTick: 1, WiltThreshold: 0}, 1)
	f.Replace(
		[]domain.LandPlot{{ID: 0, Status: domain.LandStatusWatered, LastWatered: t0}},
		[]domain.Crop{{PlotID: 0, Species: "turnip", Growth: 800, Health: 10, State: domain.CropStateGrowing}},
	)

	_, err := f.Advance(t0.AddMinutes(1))
	require.NoError(t, err)
	assert.Equal(t, domain.LandStatusWatered, f.Plots()[0].Status)
	assert.Equal(t, 801, f.Crops()[0].Growth)

	_, err = f.Advance(t0.AddMinutes(2))
	require.NoError(t, err)
	assert.Equal(t, domain.LandStatusUnwatered, f.Plots()[0].Status)
	assert.Equal(t, 801, f.Crops()[0].Growth)
	assert.Equal(t, 10, f.Crops()[0].Health)
}

func TestActions(t *testing.T) {
	ctx := context.Background()
	f := newFarm(t, DefaultRules(), 3)

	_, err := f.Plant(0, "turnip")
	assert.ErrorIs(t, err, domain.ErrPlotNotTilled)
	assert.ErrorIs(t, f.Water(0, t0), domain.ErrPlotNotTilled)
	assert.ErrorIs(t, f.Till(7), domain.ErrPlotNotFound)

	require.NoError(t, f.PlaceObstacle(1, domain.ObstacleRock))
	assert.ErrorIs(t, f.Till(1), domain.ErrPlotObstructed)
	cleared, err := f.ClearObstacle(1)
	require.NoError(t, err)
	assert.Equal(t, domain.ObstacleRock, cleared)

	require.NoError(t, f.Till(0))
	_, err = f.Plant(0, "cactus")
	assert.ErrorIs(t, err, domain.ErrUnknownSpecies)

	crop, err := f.Plant(0, "turnip")
	require.NoError(t, err)
	assert.Equal(t, domain.MinutesPerHour, crop.Health)
	_, err = f.Plant(0, "turnip")
	assert.ErrorIs(t, err, domain.ErrPlotOccupied)

	_, err = f.Harvest(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrNothingToHarvest)
}

func TestHarvest(t *testing.T) {
	ctx := context.Background()
	f := newFarm(t, DefaultRules(), 2)
	f.Replace(
		[]domain.LandPlot{{ID: 0, Status: domain.LandStatusUnwatered}, {ID: 1, Status: domain.LandStatusUnwatered}},
		[]domain.Crop{
			{PlotID: 0, Species: "turnip", Growth: domain.MinutesPerDay, Health: 60, State: domain.CropStateMature},
			{PlotID: 1, Species: "tomato", Growth: 2 * domain.MinutesPerDay, Health: 60, State: domain.CropStateMature},
		},
	)

	produce, err := f.Harvest(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "turnip", produce)

	produce, err = f.Harvest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "tomato", produce)

	crops := f.Crops()
	require.Len(t, crops, 1)
	assert.Equal(t, 1, crops[0].PlotID)
	assert.Equal(t, domain.CropStateGrowing, crops[0].State)
	assert.Equal(t, domain.MinutesPerDay, crops[0].Growth)
}

func TestTill_DigsUpWiltedCrop(t *testing.T) {
	f := newFarm(t, DefaultRules(), 1)
	f.Replace(
		[]domain.LandPlot{{ID: 0, Status: domain.LandStatusUnwatered}},
		[]domain.Crop{{PlotID: 0, Species: "turnip", State: domain.CropStateWilted}},
	)

	require.NoError(t, f.Till(0))

	assert.Empty(t, f.Crops())
}

func TestValidate(t *testing.T) {
	f := New(DefaultRules(), testCatalog())
	plots := []domain.LandPlot{{ID: 0}, {ID: 1}}

	assert.NoError(t, f.Validate(plots, []domain.Crop{{PlotID: 1, Species: "turnip"}}))
	assert.ErrorIs(t, f.Validate(plots, []domain.Crop{{PlotID: 2, Species: "turnip"}}), domain.ErrDeserializationMismatch)
	assert.ErrorIs(t, f.Validate(plots, []domain.Crop{{PlotID: 0, Species: "turnip"}, {PlotID: 0, Species: "turnip"}}), domain.ErrDeserializationMismatch)
	assert.ErrorIs(t, f.Validate(plots, []domain.Crop{{PlotID: 0, Species: "cactus"}}), domain.ErrDeserializationMismatch)
	assert.ErrorIs(t, f.Validate([]domain.LandPlot{{ID: 1}}, nil), domain.ErrDeserializationMismatch)
}

func TestSummary(t *testing.T) {
	f := newFarm(t, DefaultRules(), 2)
	f.Replace(
		[]domain.LandPlot{{ID: 0, Status: domain.LandStatusWatered}, {ID: 1, Status: domain.LandStatusUnwatered}},
		[]domain.Crop{{PlotID: 0, Species: "turnip", State: domain.CropStateMature}, {PlotID: 1, Species: "turnip", State: domain.CropStateWilted}},
	)

	assert.Equal(t, domain.FarmSummary{Initialized: true, Plots: 2, Watered: 1, Crops: 2, Mature: 1, Wilted: 1}, f.Summary())
}
