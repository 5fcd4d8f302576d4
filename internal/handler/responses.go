package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/farmstead/internal/domain"
	"github.com/osse101/farmstead/internal/logger"
	"github.com/osse101/farmstead/internal/worker"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, so the failure can only be logged
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and maps it to a user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidSkip):
		return http.StatusBadRequest, ErrMsgInvalidSkipError
	case errors.Is(err, domain.ErrSkipTooFar):
		return http.StatusBadRequest, ErrMsgSkipTooFarError
	case errors.Is(err, domain.ErrClockExhausted):
		return http.StatusConflict, ErrMsgClockExhaustedError
	case errors.Is(err, domain.ErrTrackerFailed):
		return http.StatusInternalServerError, ErrMsgTrackerFailedError
	case errors.Is(err, domain.ErrDeserializationMismatch):
		return http.StatusUnprocessableEntity, ErrMsgSnapshotMismatchError
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return http.StatusNotFound, ErrMsgSnapshotNotFoundError
	case errors.Is(err, domain.ErrSleepInProgress):
		return http.StatusConflict, ErrMsgSleepInProgressError
	case errors.Is(err, domain.ErrSleepNotWaiting):
		return http.StatusConflict, ErrMsgSleepNotWaitingError
	case errors.Is(err, domain.ErrSleepCancelled):
		return http.StatusConflict, ErrMsgSleepCancelledError
	case errors.Is(err, domain.ErrFadeTimeout):
		return http.StatusGatewayTimeout, ErrMsgFadeTimeoutError
	case errors.Is(err, domain.ErrPlotNotFound):
		return http.StatusNotFound, ErrMsgPlotNotFoundError
	case errors.Is(err, domain.ErrPlotNotTilled):
		return http.StatusBadRequest, ErrMsgPlotNotTilledError
	case errors.Is(err, domain.ErrPlotOccupied):
		return http.StatusConflict, ErrMsgPlotOccupiedError
	case errors.Is(err, domain.ErrPlotObstructed):
		return http.StatusConflict, ErrMsgPlotObstructedError
	case errors.Is(err, domain.ErrNothingToHarvest):
		return http.StatusBadRequest, ErrMsgNothingToHarvestError
	case errors.Is(err, domain.ErrFarmNotInitialized):
		return http.StatusConflict, ErrMsgFarmNotInitializedError
	case errors.Is(err, domain.ErrUnknownSpecies):
		return http.StatusBadRequest, ErrMsgUnknownSpeciesError
	case errors.Is(err, domain.ErrUnknownItem):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgInsufficientItemsErr
	case errors.Is(err, domain.ErrInventoryFull):
		return http.StatusConflict, ErrMsgInventoryFullError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityError
	case errors.Is(err, domain.ErrUnknownLocation):
		return http.StatusBadRequest, ErrMsgUnknownLocationError
	case errors.Is(err, domain.ErrNPCNotFound):
		return http.StatusNotFound, ErrMsgNPCNotFoundError
	case errors.Is(err, domain.ErrAlreadyDoneToday):
		return http.StatusConflict, ErrMsgAlreadyDoneTodayError
	case errors.Is(err, domain.ErrIncubatorOccupied):
		return http.StatusConflict, ErrMsgIncubatorBusyError
	case errors.Is(err, domain.ErrIncubatorNotFound):
		return http.StatusNotFound, ErrMsgIncubatorMissingError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, worker.ErrPoolStopped), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrMsgWorldBusy
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
