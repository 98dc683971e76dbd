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

// TransactionsTokener defines only the methods needed by this handler.
type TransactionsTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// TransactionLister defines the interface that the repository must implement.
type TransactionLister interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error)
}

// TransactionsResponse represents a transaction history listing
// swagger:model TransactionsResponse
type TransactionsResponse struct {
	Transactions []models.TransactionDB `json:"transactions"`
}

// TransactionsErrorResponse represents an error response
// swagger:model TransactionsErrorResponse
type TransactionsErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewTransactionsHandler returns an HTTP handler for the caller's transaction history.
// @Summary List transactions
// @Description Returns the caller's wallet transactions, newest first.
// @Tags wallet
// @Produce json
// @Success 200 {object} handlers.TransactionsResponse "Transaction history"
// @Failure 401 {object} handlers.TransactionsErrorResponse "Unauthorized"
// @Router /transactions [get]
// @Security BearerAuth
func NewTransactionsHandler(txns TransactionLister, tokenGetter TransactionsTokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to get token from request", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			logger.Log.Errorw("failed to get claims from token", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Unauthorized"})
			return
		}

		transactions, err := txns.ListByUserID(ctx, claims.UserID)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "user_id", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Internal server error"})
			return
		}

		if transactions == nil {
			transactions = []models.TransactionDB{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TransactionsResponse{Transactions: transactions})
	}
}
