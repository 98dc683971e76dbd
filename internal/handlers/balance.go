package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/jwt"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/models"
)

// BalanceTokener defines only the methods needed by this handler.
type BalanceTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// ProfileReader loads a user's profile row.
type ProfileReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// BalanceResponse represents a wallet balance with aggregate stats
// swagger:model BalanceResponse
type BalanceResponse struct {
	// Wallet balance in whole currency units
	// default: 50
	WalletBalance int64 `json:"wallet_balance"`

	Kills             int   `json:"kills"`
	Wins              int   `json:"wins"`
	TournamentsPlayed int   `json:"tournaments_played"`
	TotalWinnings     int64 `json:"total_winnings"`
}

// BalanceErrorResponse represents an error response for balance
// swagger:model BalanceErrorResponse
type BalanceErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewBalanceHandler returns an HTTP handler for the wallet balance.
// @Summary Get wallet balance
// @Description Returns the caller's wallet balance and aggregate match stats.
// @Tags wallet
// @Produce json
// @Success 200 {object} handlers.BalanceResponse "Balance"
// @Failure 401 {object} handlers.BalanceErrorResponse "Unauthorized"
// @Router /balance [get]
// @Security BearerAuth
func NewBalanceHandler(users ProfileReader, tokenGetter BalanceTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to get token from request", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(BalanceErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			logger.Log.Errorw("failed to get claims from token", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(BalanceErrorResponse{Error: "Unauthorized"})
			return
		}

		user, err := users.GetByID(ctx, claims.UserID)
		if err != nil {
			logger.Log.Errorw("failed to load profile", "user_id", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(BalanceErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(BalanceResponse{
			WalletBalance:     user.WalletBalance,
			Kills:             user.Kills,
			Wins:              user.Wins,
			TournamentsPlayed: user.TournamentsPlayed,
			TotalWinnings:     user.TotalWinnings,
		})
	}
}
