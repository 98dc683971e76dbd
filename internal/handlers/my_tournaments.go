package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/services"
)

// UserTournamentLister defines the interface that the service must implement.
type UserTournamentLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]services.MyTournament, error)
}

// MyTournamentsResponse represents the joined-tournaments listing
// swagger:model MyTournamentsResponse
type MyTournamentsResponse struct {
	Tournaments []services.MyTournament `json:"tournaments"`
}

// MyTournamentsErrorResponse represents an error response
// swagger:model MyTournamentsErrorResponse
type MyTournamentsErrorResponse struct {
	// Error message
	// default: user_id is required
	Error string `json:"error"`
}

// NewMyTournamentsHandler returns an HTTP handler for a user's joined tournaments.
// @Summary List joined tournaments
// @Description Returns tournaments the given user has joined, with their join record merged in.
// @Tags tournaments
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} handlers.MyTournamentsResponse "Joined tournaments"
// @Failure 400 {object} handlers.MyTournamentsErrorResponse "Missing or malformed user_id"
// @Failure 504 {object} handlers.MyTournamentsErrorResponse "Upstream timeout"
// @Router /my-tournaments [get]
func NewMyTournamentsHandler(svc UserTournamentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.URL.Query().Get("user_id")
		if userIDStr == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MyTournamentsErrorResponse{Error: "user_id is required"})
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(MyTournamentsErrorResponse{Error: "user_id is malformed"})
			return
		}

		tournaments, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUpstreamTimeout) {
				w.WriteHeader(http.StatusGatewayTimeout)
				json.NewEncoder(w).Encode(MyTournamentsErrorResponse{Error: "upstream timeout"})
				return
			}
			logger.Log.Errorw("failed to list joined tournaments", "user_id", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(MyTournamentsErrorResponse{Error: err.Error()})
			return
		}

		if tournaments == nil {
			tournaments = []services.MyTournament{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(MyTournamentsResponse{Tournaments: tournaments})
	}
}
