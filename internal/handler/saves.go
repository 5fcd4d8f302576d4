package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/osse101/farmstead/internal/domain"
)

// SaveResponse names the slot an operation used
type SaveResponse struct {
	Message string `json:"message"`
	Slot    string `json:"slot"`
}

// SaveSummary describes one stored slot without its full snapshot
type SaveSummary struct {
	Slot      string           `json:"slot"`
	Timestamp domain.Timestamp `json:"timestamp"`
	Money     int              `json:"money"`
	UpdatedAt string           `json:"updated_at"`
}

// HandleSave writes the world to its save slot
func (h *GameHandlers) HandleSave(w http.ResponseWriter, r *http.Request) {
	if err := h.Executor.Do(r.Context(), h.World.Save); err != nil {
		respondServiceError(w, r, "Save", err)
		return
	}
	respondJSON(w, http.StatusOK, SaveResponse{Message: MsgGameSaved, Slot: h.World.SaveSlot()})
}

// HandleLoad replaces the world with its save slot
func (h *GameHandlers) HandleLoad(w http.ResponseWriter, r *http.Request) {
	if err := h.Executor.Do(r.Context(), h.World.Load); err != nil {
		respondServiceError(w, r, "Load", err)
		return
	}
	respondJSON(w, http.StatusOK, SaveResponse{Message: MsgGameLoaded, Slot: h.World.SaveSlot()})
}

// HandleListSaves summarizes every stored slot
func (h *GameHandlers) HandleListSaves(w http.ResponseWriter, r *http.Request) {
	summaries := []SaveSummary{}
	if h.Saves != nil {
		records, err := h.Saves.List(r.Context())
		if err != nil {
			respondServiceError(w, r, "List saves", err)
			return
		}
		for _, rec := range records {
			summaries = append(summaries, SaveSummary{
				Slot:      rec.Slot,
				Timestamp: rec.Snapshot.Timestamp,
				Money:     rec.Snapshot.Money,
				UpdatedAt: rec.UpdatedAt.Format(http.TimeFormat),
			})
		}
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: summaries})
}

// HandleExportSnapshot returns the full world snapshot
func (h *GameHandlers) HandleExportSnapshot(w http.ResponseWriter, r *http.Request) {
	readWorld(w, r, h.Executor, "Export snapshot", h.World.ExportSnapshot)
}

// HandleImportSnapshot replaces the world with the posted snapshot. A
// snapshot that does not fit this world is rejected and nothing changes.
func (h *GameHandlers) HandleImportSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap domain.Snapshot
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}

	err := h.Executor.Do(r.Context(), func(ctx context.Context) error {
		return h.World.ImportSnapshot(ctx, &snap)
	})
	if err != nil {
		respondServiceError(w, r, "Import snapshot", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSnapshotImported})
}
