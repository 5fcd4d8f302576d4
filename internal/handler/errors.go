package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgWorldBusy             = "World is busy, try again"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	// Clock
	ErrMsgInvalidSkipError    = "Skip target must be after the current time"
	ErrMsgSkipTooFarError     = "Skip target is too far ahead"
	ErrMsgTrackerFailedError  = "Time advanced but some subsystems failed"
	ErrMsgClockExhaustedError = "Game time has run out"

	// Snapshot
	ErrMsgSnapshotMismatchError = "Snapshot does not match this world"
	ErrMsgSnapshotNotFoundError = "No save found in that slot"

	// Sleep
	ErrMsgSleepInProgressError = "Already sleeping"
	ErrMsgSleepNotWaitingError = "Sleep is not waiting for the screen fade"
	ErrMsgSleepCancelledError  = "Sleep was cancelled"
	ErrMsgFadeTimeoutError     = "Timed out waiting for the screen fade"

	// Farm
	ErrMsgPlotNotFoundError       = "Land plot not found"
	ErrMsgPlotNotTilledError      = "Land plot is not tilled"
	ErrMsgPlotOccupiedError       = "Land plot already has a crop"
	ErrMsgPlotObstructedError     = "Land plot is obstructed"
	ErrMsgNothingToHarvestError   = "Nothing to harvest"
	ErrMsgFarmNotInitializedError = "Visit the farm first"

	// Catalog and inventory
	ErrMsgUnknownSpeciesError   = "Unknown crop"
	ErrMsgItemNotFoundError     = "Item not found"
	ErrMsgNotEnoughMoneyError   = "Not enough money"
	ErrMsgInsufficientItemsErr  = "Not enough items"
	ErrMsgInventoryFullError    = "Inventory is full"
	ErrMsgInvalidQuantityError  = "Quantity must be positive"
	ErrMsgInvalidInputError     = "Invalid request. Please check your inputs."
	ErrMsgUnknownLocationError  = "Unknown location"
	ErrMsgNPCNotFoundError      = "You have not met them yet"
	ErrMsgAlreadyDoneTodayError = "Already done today"
	ErrMsgIncubatorBusyError    = "Incubator already holds an egg"
	ErrMsgIncubatorMissingError = "Incubator not found"
)

// Success messages for API responses
const (
	MsgGameSaved        = "Game saved"
	MsgGameLoaded       = "Game loaded"
	MsgSnapshotImported = "Snapshot imported"
	MsgSleepRequested   = "Sleep prompt shown"
	MsgSleepCancelled   = "Sleep cancelled"
	MsgFadeAcknowledged = "Fade acknowledged"
	MsgItemsShipped     = "Items placed in the shipping bin"
	MsgItemsBought      = "Items bought"
	MsgPlotTilled       = "Plot tilled"
	MsgPlotWatered      = "Plot watered"
	MsgLocationChanged  = "Location changed"
	MsgClockSkipped     = "Clock skipped"
	MsgClockAdvanced    = "Clock advanced"
	MsgClockPaused      = "Clock paused"
	MsgClockResumed     = "Clock resumed"
)
