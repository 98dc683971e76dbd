package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
)

// WebhookReceiver defines the interface that the service must implement.
type WebhookReceiver interface {
	HandleWebhook(ctx context.Context, orderID, status string, amount float64, txnID string)
}

// WebhookResponse acknowledges a gateway callback
// swagger:model WebhookResponse
type WebhookResponse struct {
	// Acknowledgement
	// default: received
	Status string `json:"status"`
}

// NewPaymentWebhookHandler returns an HTTP handler for gateway callbacks.
// The gateway posts a form body with order_id, status, amount and
// transaction_id. The callback is unauthenticated: the gateway offers no
// signature scheme we can verify, so any caller can post here and the
// handler must not treat a delivery as settlement.
// @Summary Receive a payment webhook
// @Description Accepts the gateway's form-encoded callback and acknowledges it.
// @Tags payments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param order_id formData string true "Order ID"
// @Param status formData string true "Gateway status"
// @Param amount formData number false "Amount"
// @Param transaction_id formData string false "Gateway transaction ID"
// @Success 200 {object} handlers.WebhookResponse "Acknowledged"
// @Router /api/payment-webhook [post]
func NewPaymentWebhookHandler(svc WebhookReceiver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			logger.Log.Errorw("failed to parse webhook form", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid form body"})
			return
		}

		orderID := r.PostFormValue("order_id")
		status := r.PostFormValue("status")
		txnID := r.PostFormValue("transaction_id")
		amount, _ := strconv.ParseFloat(r.PostFormValue("amount"), 64)

		svc.HandleWebhook(r.Context(), orderID, status, amount, txnID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(WebhookResponse{Status: "received"})
	}
}
