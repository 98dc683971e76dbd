package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/models"
)

// ParticipantLister defines the interface that the service must implement.
type ParticipantLister interface {
	Participants(ctx context.Context, tournamentID uuid.UUID) ([]models.ParticipantView, error)
}

// ParticipantsResponse represents a participant listing
// swagger:model ParticipantsResponse
type ParticipantsResponse struct {
	Participants []models.ParticipantView `json:"participants"`
}

// ParticipantsErrorResponse represents an error response
// swagger:model ParticipantsErrorResponse
type ParticipantsErrorResponse struct {
	// Error message
	// default: tournament id is malformed
	Error string `json:"error"`
}

// NewParticipantsHandler returns an HTTP handler for a tournament's participant list.
// @Summary List participants
// @Description Returns the participants of a tournament with display names, ordered by join time.
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} handlers.ParticipantsResponse "Participants"
// @Failure 400 {object} handlers.ParticipantsErrorResponse "Malformed id"
// @Router /tournaments/{id}/participants [get]
func NewParticipantsHandler(svc ParticipantLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ParticipantsErrorResponse{Error: "tournament id is malformed"})
			return
		}

		participants, err := svc.Participants(r.Context(), tournamentID)
		if err != nil {
			logger.Log.Errorw("failed to list participants", "tournament_id", tournamentID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ParticipantsErrorResponse{Error: err.Error()})
			return
		}

		if participants == nil {
			participants = []models.ParticipantView{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ParticipantsResponse{Participants: participants})
	}
}
