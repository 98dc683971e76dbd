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

// OrderCreator defines the interface that the service must implement.
type OrderCreator interface {
	CreateOrder(ctx context.Context, orderID string, amount float64, customerMobile, remark string) (*services.CreateOrderOutcome, error)
}

// CreatePaymentRequest represents the JSON body for creating a payment order
// swagger:model CreatePaymentRequest
type CreatePaymentRequest struct {
	// Amount in whole currency units
	// required: true
	// default: 100
	Amount float64 `json:"amount"`

	// Merchant order identifier
	// required: true
	// default: ORD-123
	OrderID string `json:"order_id"`

	// Customer phone number, either field name is accepted
	CustomerPhone  string `json:"customer_phone"`
	CustomerMobile string `json:"customer_mobile"`

	// Free-form remark forwarded to the gateway
	Remark string `json:"remark"`
}

// CreatePaymentResponse represents the gateway's create-order reply
// swagger:model CreatePaymentResponse
type CreatePaymentResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	PaymentURL string `json:"payment_url"`
	OrderID    string `json:"order_id"`
}

// CreatePaymentErrorResponse represents an error response
// swagger:model CreatePaymentErrorResponse
type CreatePaymentErrorResponse struct {
	// Error message
	// default: amount and order_id are required
	Error string `json:"error"`
}

// NewCreatePaymentHandler returns an HTTP handler that forwards an
// order-creation request to the UPI gateway. Validation failures return
// before any outbound call is made.
// @Summary Create a payment order
// @Description Forwards the order to the UPI gateway and returns its status, message and redirect URL.
// @Tags payments
// @Accept json
// @Produce json
// @Param createPaymentRequest body handlers.CreatePaymentRequest true "Payment order request"
// @Success 200 {object} handlers.CreatePaymentResponse "Gateway reply"
// @Failure 400 {object} handlers.CreatePaymentErrorResponse "Missing amount or order_id"
// @Failure 500 {object} handlers.CreatePaymentErrorResponse "Gateway failure"
// @Router /api/create-payment [post]
func NewCreatePaymentHandler(svc OrderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreatePaymentErrorResponse{Error: "Invalid request body"})
			return
		}

		if req.Amount <= 0 || req.OrderID == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreatePaymentErrorResponse{Error: "amount and order_id are required"})
			return
		}

		mobile := req.CustomerMobile
		if mobile == "" {
			mobile = req.CustomerPhone
		}

		outcome, err := svc.CreateOrder(r.Context(), req.OrderID, req.Amount, mobile, req.Remark)
		if err != nil {
			logger.Log.Errorw("failed to create payment order", "order_id", req.OrderID, "error", err)
			if errors.Is(err, facades.ErrInvalidGatewayResponse) {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(CreatePaymentErrorResponse{Error: "invalid response from payment gateway"})
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(CreatePaymentErrorResponse{Error: err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(CreatePaymentResponse{
			Status:     outcome.Status,
			Message:    outcome.Message,
			PaymentURL: outcome.PaymentURL,
			OrderID:    outcome.OrderID,
		})
	}
}
