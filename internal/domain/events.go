package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "crop.wilted")
const (
	// EventTypeDayStarted is published when the clock crosses 00:00
	EventTypeDayStarted = "day.started"

	// EventTypeItemsShipped is published after the shipping bin pays out
	EventTypeItemsShipped = "shipping.completed"

	// EventTypeCropMatured is published when a crop becomes harvestable
	EventTypeCropMatured = "crop.matured"

	// EventTypeCropWilted is published when a crop dies
	EventTypeCropWilted = "crop.wilted"

	// EventTypeEggHatched is published when an incubated egg hatches
	EventTypeEggHatched = "egg.hatched"

	// EventTypeSleepCompleted is published when the sleep sequence returns to idle after skipping
	EventTypeSleepCompleted = "sleep.completed"

	// EventTypeGameSaved is published after a snapshot has been stored
	EventTypeGameSaved = "game.saved"

	// EventTypeSaveFailed is published when storing or loading a snapshot fails.
	// Clients show it to the player.
	EventTypeSaveFailed = "game.save_failed"

	// EventTypeGameLoaded is published after a snapshot has been imported
	EventTypeGameLoaded = "game.loaded"
)
