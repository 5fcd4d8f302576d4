package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Clock errors
	ErrMsgInvalidSkip    = "skip target must be after the current time"
	ErrMsgSkipTooFar     = "skip target is too far ahead"
	ErrMsgTrackerFailed  = "tracker failed to process tick"
	ErrMsgClockExhausted = "game time cannot advance past the last day"

	// Persistence errors
	ErrMsgDeserializationMismatch = "snapshot does not match the current schema"
	ErrMsgSnapshotNotFound        = "snapshot not found"

	// Sleep errors
	ErrMsgSleepInProgress = "sleep is already in progress"
	ErrMsgSleepCancelled  = "sleep was cancelled"
	ErrMsgFadeTimeout     = "timed out waiting for screen fade"
	ErrMsgSleepNotWaiting = "sleep is not waiting for the fade"

	// Farm errors
	ErrMsgPlotNotFound       = "land plot not found"
	ErrMsgPlotNotTilled      = "land plot is not tilled"
	ErrMsgPlotOccupied       = "land plot already has a crop"
	ErrMsgPlotObstructed     = "land plot is obstructed"
	ErrMsgNothingToHarvest   = "nothing to harvest"
	ErrMsgFarmNotInitialized = "farm has not been initialized"

	// Catalog errors
	ErrMsgUnknownSpecies = "unknown crop species"
	ErrMsgUnknownItem    = "unknown item"

	// Economy and inventory errors
	ErrMsgInsufficientFunds    = "insufficient funds"
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgInventoryFull        = "inventory is full"
	ErrMsgInvalidQuantity      = "quantity must be positive"

	// Relationship errors
	ErrMsgNPCNotFound      = "npc not found"
	ErrMsgAlreadyDoneToday = "already done today"

	// Incubation errors
	ErrMsgIncubatorOccupied = "incubator already holds an egg"
	ErrMsgIncubatorNotFound = "incubator not found"

	// Location errors
	ErrMsgUnknownLocation = "unknown location"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Clock errors
	ErrInvalidSkip    = errors.New(ErrMsgInvalidSkip)
	ErrSkipTooFar     = errors.New(ErrMsgSkipTooFar)
	ErrTrackerFailed  = errors.New(ErrMsgTrackerFailed)
	ErrClockExhausted = errors.New(ErrMsgClockExhausted)

	// Persistence errors
	ErrDeserializationMismatch = errors.New(ErrMsgDeserializationMismatch)
	ErrSnapshotNotFound        = errors.New(ErrMsgSnapshotNotFound)

	// Sleep errors
	ErrSleepInProgress = errors.New(ErrMsgSleepInProgress)
	ErrSleepCancelled  = errors.New(ErrMsgSleepCancelled)
	ErrFadeTimeout     = errors.New(ErrMsgFadeTimeout)
	ErrSleepNotWaiting = errors.New(ErrMsgSleepNotWaiting)

	// Farm errors
	ErrPlotNotFound       = errors.New(ErrMsgPlotNotFound)
	ErrPlotNotTilled      = errors.New(ErrMsgPlotNotTilled)
	ErrPlotOccupied       = errors.New(ErrMsgPlotOccupied)
	ErrPlotObstructed     = errors.New(ErrMsgPlotObstructed)
	ErrNothingToHarvest   = errors.New(ErrMsgNothingToHarvest)
	ErrFarmNotInitialized = errors.New(ErrMsgFarmNotInitialized)

	// Catalog errors
	ErrUnknownSpecies = errors.New(ErrMsgUnknownSpecies)
	ErrUnknownItem    = errors.New(ErrMsgUnknownItem)

	// Economy and inventory errors
	ErrInsufficientFunds    = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrInventoryFull        = errors.New(ErrMsgInventoryFull)
	ErrInvalidQuantity      = errors.New(ErrMsgInvalidQuantity)

	// Relationship errors
	ErrNPCNotFound      = errors.New(ErrMsgNPCNotFound)
	ErrAlreadyDoneToday = errors.New(ErrMsgAlreadyDoneToday)

	// Incubation errors
	ErrIncubatorOccupied = errors.New(ErrMsgIncubatorOccupied)
	ErrIncubatorNotFound = errors.New(ErrMsgIncubatorNotFound)

	// Location errors
	ErrUnknownLocation = errors.New(ErrMsgUnknownLocation)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
