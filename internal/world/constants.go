package world

// Defaults
const (
	DefaultShipHour = 18
	TrackerName     = "world"
	SceneName       = "farm_scene"
	EggItem         = "egg"
)

// Log messages
const (
	LogMsgStepFailed         = "World tick step failed"
	LogMsgDayReset           = "Day has been reset"
	LogMsgCropTransition     = "Crop changed state"
	LogMsgEventPublishFailed = "Failed to publish world event"
	LogMsgSnapshotImported   = "Snapshot imported"
	LogMsgSnapshotRejected   = "Snapshot rejected"
	LogMsgImportRollback     = "Snapshot import failed while applying, restoring previous state"
	LogMsgGameSaved          = "Game saved"
	LogMsgSaveFailed         = "Failed to save game"
	LogMsgLoadFailed         = "Failed to load game"
	LogMsgHarvestRollback    = "Harvest rolled back, produce did not fit"
	LogMsgLocationChanged    = "Player moved"
)

// Tick step names used in logs and errors
const (
	StepShipping   = "shipping"
	StepFarm       = "farm"
	StepIncubation = "incubation"
	StepDailyReset = "daily_reset"
)
