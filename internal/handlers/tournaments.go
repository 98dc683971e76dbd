package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/models"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/services"
)

// TournamentLister defines the interface that the service must implement.
type TournamentLister interface {
	List(ctx context.Context) ([]models.TournamentDB, error)
	ListAll(ctx context.Context) ([]models.TournamentDB, error)
}

// TournamentsResponse represents a tournament listing response
// swagger:model TournamentsResponse
type TournamentsResponse struct {
	Tournaments []models.TournamentDB `json:"tournaments"`
}

// TournamentsErrorResponse represents an error response for the listing
// swagger:model TournamentsErrorResponse
type TournamentsErrorResponse struct {
	// Error message
	// default: upstream timeout
	Error string `json:"error"`
}

func writeTournamentListing(w http.ResponseWriter, tournaments []models.TournamentDB, err error) {
	if err != nil {
		if errors.Is(err, services.ErrUpstreamTimeout) {
			w.WriteHeader(http.StatusGatewayTimeout)
			json.NewEncoder(w).Encode(TournamentsErrorResponse{Error: "upstream timeout"})
			return
		}
		logger.Log.Errorw("failed to list tournaments", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(TournamentsErrorResponse{Error: err.Error()})
		return
	}

	if tournaments == nil {
		tournaments = []models.TournamentDB{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(TournamentsResponse{Tournaments: tournaments})
}

// NewTournamentsHandler returns an HTTP handler for the public listing.
// @Summary List tournaments
// @Description Returns upcoming and live tournaments. Bounded by a fixed timeout; a hung upstream yields 504.
// @Tags tournaments
// @Produce json
// @Success 200 {object} handlers.TournamentsResponse "Tournament listing"
// @Failure 504 {object} handlers.TournamentsErrorResponse "Upstream timeout"
// @Router /tournaments [get]
func NewTournamentsHandler(svc TournamentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := svc.List(r.Context())
		writeTournamentListing(w, tournaments, err)
	}
}

// NewAdminTournamentsHandler returns an HTTP handler for the admin listing.
// @Summary List all tournaments
// @Description Returns tournaments of every status, bypassing the listing cache.
// @Tags tournaments
// @Produce json
// @Success 200 {object} handlers.TournamentsResponse "Tournament listing"
// @Failure 504 {object} handlers.TournamentsErrorResponse "Upstream timeout"
// @Router /admin/tournaments [get]
func NewAdminTournamentsHandler(svc TournamentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := svc.ListAll(r.Context())
		writeTournamentListing(w, tournaments, err)
	}
}
