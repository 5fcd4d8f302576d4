package farm

// Rule defaults
const (
	DefaultWaterDurationHours = 24
	DefaultDecayPerTick       = 1
	DefaultWiltThreshold      = 0
	DefaultPlotCount          = 24
)

// Log messages
const (
	LogMsgFarmInitialized = "Farm initialized"
	LogMsgCropHarvested   = "Crop harvested"
)
