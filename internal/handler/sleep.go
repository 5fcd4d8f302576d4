package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/farmstead/internal/sleep"
)

// Sleep result waits are capped so a stuck fade never pins a request
const (
	DefaultSleepWait = 5 * time.Second
	MaxSleepWait     = 60 * time.Second
)

// SleepStateResponse reports the sleep stage
type SleepStateResponse struct {
	State     sleep.State `json:"state"`
	SessionID string      `json:"session_id,omitempty"`
	Message   string      `json:"message,omitempty"`
}

// SleepResultResponse reports a finished sleep
type SleepResultResponse struct {
	sleep.Result
	Error string `json:"error,omitempty"`
}

// HandleGetSleep returns the current stage of the sleep sequence
func (h *GameHandlers) HandleGetSleep(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SleepStateResponse{State: h.Sleep.State()})
}

// HandleRequestSleep shows the sleep prompt; confirming it starts the sequence
func (h *GameHandlers) HandleRequestSleep(w http.ResponseWriter, r *http.Request) {
	if err := h.Sleep.Request(r.Context()); err != nil {
		respondServiceError(w, r, "Request sleep", err)
		return
	}
	respondJSON(w, http.StatusAccepted, SleepStateResponse{State: h.Sleep.State(), Message: MsgSleepRequested})
}

// HandleStartSleep starts a sleep without prompting
func (h *GameHandlers) HandleStartSleep(w http.ResponseWriter, r *http.Request) {
	session, err := h.Sleep.Start(r.Context())
	if err != nil {
		respondServiceError(w, r, "Start sleep", err)
		return
	}
	respondJSON(w, http.StatusAccepted, SleepStateResponse{State: h.Sleep.State(), SessionID: session})
}

// HandleCancelSleep aborts a sleep that is still waiting for the fade
func (h *GameHandlers) HandleCancelSleep(w http.ResponseWriter, r *http.Request) {
	if err := h.Sleep.Cancel(); err != nil {
		respondServiceError(w, r, "Cancel sleep", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSleepCancelled})
}

// HandleFadeComplete signals that the screen finished fading out
func (h *GameHandlers) HandleFadeComplete(w http.ResponseWriter, r *http.Request) {
	if err := h.Sleep.OnFadeOutComplete(); err != nil {
		respondServiceError(w, r, "Fade complete", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFadeAcknowledged})
}

// HandleSleepResult waits (bounded by ?wait=) for the current or most recent
// sleep to finish
func (h *GameHandlers) HandleSleepResult(w http.ResponseWriter, r *http.Request) {
	wait, err := time.ParseDuration(GetOptionalQueryParam(r, "wait", DefaultSleepWait.String()))
	if err != nil || wait <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidInputError)
		return
	}
	wait = min(wait, MaxSleepWait)

	ctx, cancel := context.WithTimeout(r.Context(), wait)
	defer cancel()

	res, err := h.Sleep.Wait(ctx)
	if ctx.Err() != nil {
		respondJSON(w, http.StatusAccepted, SleepStateResponse{State: h.Sleep.State()})
		return
	}
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(err)
		respondJSON(w, status, SleepResultResponse{Result: res, Error: msg})
		return
	}
	respondJSON(w, http.StatusOK, SleepResultResponse{Result: res})
}
