package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/osse101/farmstead/internal/domain"
)

// MaxAdvanceTicks bounds a single advance or skip request to one week of
// one-minute ticks
const MaxAdvanceTicks = 7 * 24 * 60

// AdvanceRequest advances the clock by a number of ticks
type AdvanceRequest struct {
	Ticks int `json:"ticks" validate:"required,min=1,max=10080"`
}

// SkipRequest jumps the clock forward to a target time
type SkipRequest struct {
	Day    uint32 `json:"day" validate:"required,min=1"`
	Hour   int    `json:"hour" validate:"gte=0,lte=23"`
	Minute int    `json:"minute" validate:"gte=0,lte=59"`
}

// ClockResponse describes the clock after an operation
type ClockResponse struct {
	Now            domain.Timestamp `json:"now"`
	MinutesPerTick int              `json:"minutes_per_tick"`
	Paused         bool             `json:"paused"`
	TrackerErrors  []string         `json:"tracker_errors,omitempty"`
}

func (h *GameHandlers) clockResponse(trackerErr error) ClockResponse {
	res := ClockResponse{
		Now:            h.Clock.Now(),
		MinutesPerTick: h.Clock.MinutesPerTick(),
	}
	if h.Ticks != nil {
		res.Paused = h.Ticks.Paused()
	}
	if trackerErr != nil {
		res.TrackerErrors = []string{trackerErr.Error()}
	}
	return res
}

// HandleGetClock returns the current game time
func (h *GameHandlers) HandleGetClock(w http.ResponseWriter, r *http.Request) {
	readWorld(w, r, h.Executor, "Get clock", func() ClockResponse { return h.clockResponse(nil) })
}

// HandleAdvance delivers a number of ticks immediately. Tracker failures do
// not stop the clock; they are reported alongside the new time.
func (h *GameHandlers) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Advance clock",
		func(ctx context.Context, req AdvanceRequest) (ClockResponse, error) {
			var trackerErrs []error
			for i := 0; i < req.Ticks; i++ {
				if err := ctx.Err(); err != nil {
					return ClockResponse{}, err
				}
				if err := h.Clock.AdvanceOneUnit(ctx); err != nil {
					if !errors.Is(err, domain.ErrTrackerFailed) {
						return ClockResponse{}, err
					}
					trackerErrs = append(trackerErrs, err)
				}
			}
			return h.clockResponse(errors.Join(trackerErrs...)), nil
		},
		func(res ClockResponse) interface{} {
			return DataResponse{Message: MsgClockAdvanced, Data: res}
		})
}

// HandleSkip jumps the clock to a later time, ticking through every minute.
// A skip may cover at most MaxAdvanceTicks ticks.
func (h *GameHandlers) HandleSkip(w http.ResponseWriter, r *http.Request) {
	handleWorldAction(w, r, h.Executor, "Skip clock",
		func(ctx context.Context, req SkipRequest) (ClockResponse, error) {
			target := domain.NewTimestamp(req.Day, req.Hour, req.Minute)
			limit := int64(MaxAdvanceTicks) * int64(h.Clock.MinutesPerTick())
			if ahead := target.MinutesSince(h.Clock.Now()); ahead > limit {
				return ClockResponse{}, fmt.Errorf("%w: %d minutes ahead, limit %d", domain.ErrSkipTooFar, ahead, limit)
			}
			err := h.Clock.Skip(ctx, target)
			if err != nil && (!errors.Is(err, domain.ErrTrackerFailed) || ctx.Err() != nil) {
				return ClockResponse{}, err
			}
			return h.clockResponse(err), nil
		},
		func(res ClockResponse) interface{} { return DataResponse{Message: MsgClockSkipped, Data: res} })
}

// HandlePause stops real-time ticking
func (h *GameHandlers) HandlePause(w http.ResponseWriter, r *http.Request) {
	if h.Ticks != nil {
		h.Ticks.Pause()
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgClockPaused})
}

// HandleResume restarts real-time ticking
func (h *GameHandlers) HandleResume(w http.ResponseWriter, r *http.Request) {
	if h.Ticks != nil {
		h.Ticks.Resume()
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgClockResumed})
}
