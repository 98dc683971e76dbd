package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/jwt"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/services"
)

// JoinTokener defines only the methods needed by this handler.
type JoinTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// Joiner defines the interface that the service must implement.
type Joiner interface {
	Join(ctx context.Context, tournamentID, userID uuid.UUID) error
}

// JoinResponse represents a successful join response
// swagger:model JoinResponse
type JoinResponse struct {
	// Success message
	// default: Tournament joined successfully
	Message string `json:"message"`
}

// JoinErrorResponse represents an error response for joining
// swagger:model JoinErrorResponse
type JoinErrorResponse struct {
	// Error message
	// default: Tournament is full
	Error string `json:"error"`
}

// NewJoinHandler returns an HTTP handler for joining a tournament.
// @Summary Join a tournament
// @Description Creates the join record, debits the entry fee and notifies the waiting room.
// @Tags tournaments
// @Produce json
// @Param id path string true "Tournament ID"
// @Success 200 {object} handlers.JoinResponse "Joined"
// @Failure 400 {object} handlers.JoinErrorResponse "Malformed id or insufficient balance"
// @Failure 401 {object} handlers.JoinErrorResponse "Unauthorized"
// @Failure 409 {object} handlers.JoinErrorResponse "Tournament full or already joined"
// @Router /tournaments/{id}/join [post]
// @Security BearerAuth
func NewJoinHandler(svc Joiner, tokenGetter JoinTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to get token from request", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(JoinErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			logger.Log.Errorw("failed to get claims from token", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(JoinErrorResponse{Error: "Unauthorized"})
			return
		}

		tournamentID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(JoinErrorResponse{Error: "tournament id is malformed"})
			return
		}

		if err := svc.Join(ctx, tournamentID, claims.UserID); err != nil {
			switch {
			case errors.Is(err, services.ErrTournamentFull):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(JoinErrorResponse{Error: "Tournament is full"})
			case errors.Is(err, services.ErrAlreadyJoined):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(JoinErrorResponse{Error: "Already joined this tournament"})
			case errors.Is(err, services.ErrInsufficientBalance):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(JoinErrorResponse{Error: "Insufficient wallet balance"})
			default:
				logger.Log.Errorw("failed to join tournament", "tournament_id", tournamentID, "user_id", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(JoinErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(JoinResponse{Message: "Tournament joined successfully"})
	}
}
