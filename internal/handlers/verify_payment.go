package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/facades"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/services"
)

// OrderVerifier defines the interface that the service must implement.
type OrderVerifier interface {
	VerifyOrder(ctx context.Context, orderID string) (*services.VerifyOutcome, error)
}

// VerifyPaymentRequest represents the JSON body for polling an order status
// swagger:model VerifyPaymentRequest
type VerifyPaymentRequest struct {
	// Merchant order identifier
	// required: true
	// default: ORD-123
	OrderID string `json:"order_id"`
}

// VerifyPaymentResponse represents the normalized order status
// swagger:model VerifyPaymentResponse
type VerifyPaymentResponse struct {
	// Normalized status, success or pending
	Status        string  `json:"status"`
	OrderID       string  `json:"order_id"`
	Amount        float64 `json:"amount,omitempty"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

// VerifyPaymentErrorResponse represents an error response
// swagger:model VerifyPaymentErrorResponse
type VerifyPaymentErrorResponse struct {
	// Error message
	// default: order_id is required
	Error string `json:"error"`
}

// NewVerifyPaymentHandler returns an HTTP handler that polls the gateway
// for an order status and normalizes the reply to success or pending.
// @Summary Verify a payment
// @Description Polls the gateway status endpoint. Only success with a nested Success counts as paid.
// @Tags payments
// @Accept json
// @Produce json
// @Param verifyPaymentRequest body handlers.VerifyPaymentRequest true "Status poll request"
// @Success 200 {object} handlers.VerifyPaymentResponse "Normalized status"
// @Failure 400 {object} handlers.VerifyPaymentErrorResponse "Missing order_id"
// @Failure 500 {object} handlers.VerifyPaymentErrorResponse "Gateway failure or malformed response"
// @Router /api/verify-payment [post]
func NewVerifyPaymentHandler(svc OrderVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(VerifyPaymentErrorResponse{Error: "Invalid request body"})
			return
		}

		if req.OrderID == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(VerifyPaymentErrorResponse{Error: "order_id is required"})
			return
		}

		outcome, err := svc.VerifyOrder(r.Context(), req.OrderID)
		if err != nil {
			logger.Log.Errorw("failed to verify payment", "order_id", req.OrderID, "error", err)
			if errors.Is(err, facades.ErrInvalidGatewayResponse) {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(VerifyPaymentErrorResponse{Error: "invalid response from payment gateway"})
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(VerifyPaymentErrorResponse{Error: err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(VerifyPaymentResponse{
			Status:        outcome.Status,
			OrderID:       outcome.OrderID,
			Amount:        outcome.Amount,
			TransactionID: outcome.TransactionID,
		})
	}
}
