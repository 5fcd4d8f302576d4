package domain

// LandStatus represents the soil state of a land plot
type LandStatus string

const (
	LandStatusSoil      LandStatus = "soil"
	LandStatusUnwatered LandStatus = "unwatered"
	LandStatusWatered   LandStatus = "watered"
)

// ObstacleStatus represents debris sitting on a land plot
type ObstacleStatus string

const (
	ObstacleNone  ObstacleStatus = "none"
	ObstacleWeeds ObstacleStatus = "weeds"
	ObstacleRock  ObstacleStatus = "rock"
	ObstacleWood  ObstacleStatus = "wood"
)

// CropState is the lifecycle stage of a planted crop
type CropState string

const (
	CropStateSeed    CropState = "seed"
	CropStateGrowing CropState = "growing"
	CropStateMature  CropState = "mature"
	CropStateWilted  CropState = "wilted"
)

// LandPlot is one tile of farmland. ID is its stable index in the farm.
type LandPlot struct {
	ID          int            `json:"id"`
	Status      LandStatus     `json:"status"`
	LastWatered Timestamp      `json:"last_watered"`
	Obstacle    ObstacleStatus `json:"obstacle"`
}

// Crop is a planted crop. PlotID references a LandPlot by id; the crop does
// not own the plot.
type Crop struct {
	PlotID  int       `json:"plot_id"`
	Species string    `json:"species"`
	Growth  int       `json:"growth"`
	Health  int       `json:"health"`
	State   CropState `json:"state"`
}

// IsWilted reports whether the crop reached its terminal state
func (c Crop) IsWilted() bool {
	return c.State == CropStateWilted
}

// CropSpecies describes how a seed grows
type CropSpecies struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	SeedItem    string `json:"seed_item" yaml:"seed_item" validate:"required"`
	ProduceItem string `json:"produce_item" yaml:"produce_item" validate:"required"`
	DaysToGrow  int    `json:"days_to_grow" yaml:"days_to_grow" validate:"gte=1"`
	// Regrowable crops return to growing after harvest instead of leaving the plot
	Regrowable     bool `json:"regrowable" yaml:"regrowable"`
	DaysToRegrow   int  `json:"days_to_regrow,omitempty" yaml:"days_to_regrow,omitempty"`
	MaxHealthHours int  `json:"max_health_hours" yaml:"max_health_hours" validate:"gte=0"`
}

// GrowthRequired returns the number of watered ticks a crop of this species
// needs to mature
func (s CropSpecies) GrowthRequired() int {
	return DaysToMinutes(s.DaysToGrow)
}

// MaxHealth returns the health ceiling of a crop of this species
func (s CropSpecies) MaxHealth() int {
	return HoursToMinutes(s.MaxHealthHours)
}

// FarmSummary is a read model of the farm for status endpoints
type FarmSummary struct {
	Initialized bool `json:"initialized"`
	Plots       int  `json:"plots"`
	Watered     int  `json:"watered"`
	Crops       int  `json:"crops"`
	Mature      int  `json:"mature"`
	Wilted      int  `json:"wilted"`
}
