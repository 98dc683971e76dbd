package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/facades"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
	"github.com/Hunter28-lucky/Esports-india-sub001/internal/models"
)

// Normalized verify statuses.
const (
	PaymentSuccess = "success"
	PaymentPending = "pending"
)

// GatewayClient defines the gateway calls the payment service needs.
type GatewayClient interface {
	CreateOrder(ctx context.Context, orderID string, amount float64, customerMobile, redirectURL, remark string) (*facades.CreateOrderResult, error)
	CheckOrderStatus(ctx context.Context, orderID string) (*facades.OrderStatusResult, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// CreateOrderOutcome is what the create-payment handler returns to callers.
type CreateOrderOutcome struct {
	Status     string
	Message    string
	PaymentURL string
	OrderID    string
}

// VerifyOutcome is the normalized result of a status poll.
type VerifyOutcome struct {
	Status        string
	OrderID       string
	Amount        float64
	TransactionID string
}

// PaymentService proxies the payment lifecycle to the external UPI gateway.
// Each call is independent and stateless; the gateway owns all settlement
// state. Lifecycle steps are published to Kafka for observability only.
type PaymentService struct {
	gateway     GatewayClient
	redirectURL string
	kafkaWriter KafkaWriter
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(gateway GatewayClient, redirectURL string, kafkaWriter KafkaWriter) *PaymentService {
	return &PaymentService{
		gateway:     gateway,
		redirectURL: redirectURL,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a payment lifecycle event to Kafka, fire-and-forget.
func (s *PaymentService) publishEvent(ctx context.Context, event models.PaymentEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "order_id", event.OrderID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal payment event for Kafka", "order_id", event.OrderID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish payment event to Kafka", "order_id", event.OrderID, "error", err)
	} else {
		logger.Log.Infow("Payment event published to Kafka", "order_id", event.OrderID, "kind", event.Kind)
	}
}

// CreateOrder forwards an order-creation request to the gateway and returns
// the gateway's status, message and redirect URL verbatim.
func (s *PaymentService) CreateOrder(ctx context.Context, orderID string, amount float64, customerMobile, remark string) (*CreateOrderOutcome, error) {
	result, err := s.gateway.CreateOrder(ctx, orderID, amount, customerMobile, s.redirectURL, remark)
	if err != nil {
		logger.Log.Errorw("failed to create gateway order", "order_id", orderID, "amount", amount, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.PaymentEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		OrderID:   orderID,
		Kind:      "order_created",
		Status:    result.Status,
		Amount:    amount,
	})

	return &CreateOrderOutcome{
		Status:     result.Status,
		Message:    result.Message,
		PaymentURL: result.PaymentURL,
		OrderID:    orderID,
	}, nil
}

// VerifyOrder polls the gateway for the order status and normalizes it.
// Only "success" with a nested "Success" counts as paid; every other
// combination is reported as pending.
func (s *PaymentService) VerifyOrder(ctx context.Context, orderID string) (*VerifyOutcome, error) {
	result, err := s.gateway.CheckOrderStatus(ctx, orderID)
	if err != nil {
		logger.Log.Errorw("failed to check gateway order status", "order_id", orderID, "error", err)
		return nil, err
	}

	outcome := &VerifyOutcome{
		Status:  PaymentPending,
		OrderID: orderID,
	}
	if result.Status == "success" && result.DataStatus == "Success" {
		outcome.Status = PaymentSuccess
		outcome.Amount = result.Amount
		outcome.TransactionID = result.TxnID
	}

	return outcome, nil
}

// HandleWebhook records a gateway callback. On success it publishes a
// payment event; wallet settlement is owned by a downstream consumer, not
// by this handler, so a duplicate or forged delivery changes nothing here.
func (s *PaymentService) HandleWebhook(ctx context.Context, orderID, status string, amount float64, txnID string) {
	logger.Log.Infow("payment webhook received",
		"order_id", orderID,
		"status", status,
		"amount", amount,
		"txn_id", txnID,
	)

	if status != "success" {
		return
	}

	s.publishEvent(ctx, models.PaymentEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		OrderID:   orderID,
		Kind:      "webhook_received",
		Status:    status,
		Amount:    amount,
		TxnID:     txnID,
	})
}
