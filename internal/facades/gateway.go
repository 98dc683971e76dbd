package facades

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Hunter28-lucky/Esports-india-sub001/internal/logger"
)

var (
	// ErrInvalidGatewayResponse is returned when the gateway body is not
	// JSON or does not match a recognized response shape.
	ErrInvalidGatewayResponse = errors.New("invalid response from payment gateway")
)

// CreateOrderResult is the decoded gateway reply to an order creation.
type CreateOrderResult struct {
	Status     string
	Message    string
	PaymentURL string
}

// OrderStatusResult is the decoded gateway reply to a status check.
type OrderStatusResult struct {
	Status     string
	Message    string
	DataStatus string
	Amount     float64
	TxnID      string
}

// PaymentGatewayFacade talks to the external UPI gateway over its
// form-encoded HTTP API. Responses are decoded into tagged structs and
// unrecognized shapes are rejected instead of being passed through.
type PaymentGatewayFacade struct {
	client    *http.Client
	baseURL   string
	userToken string
}

// NewPaymentGatewayFacade creates a facade with merchant credentials.
func NewPaymentGatewayFacade(client *http.Client, baseURL, userToken string) *PaymentGatewayFacade {
	return &PaymentGatewayFacade{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userToken: userToken,
	}
}

// createOrderResponse mirrors the gateway's create-order JSON.
type createOrderResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  *struct {
		OrderID    string `json:"orderid"`
		PaymentURL string `json:"payment_url"`
	} `json:"result"`
}

// orderStatusResponse mirrors the gateway's status-check JSON.
type orderStatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    *struct {
		Status string  `json:"status"`
		Amount float64 `json:"amount"`
		TxnID  string  `json:"txn_id"`
	} `json:"data"`
}

// CreateOrder forwards an order-creation request to the gateway.
func (f *PaymentGatewayFacade) CreateOrder(ctx context.Context, orderID string, amount float64, customerMobile, redirectURL, remark string) (*CreateOrderResult, error) {
	form := url.Values{}
	form.Set("user_token", f.userToken)
	form.Set("order_id", orderID)
	form.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	form.Set("customer_mobile", customerMobile)
	form.Set("redirect_url", redirectURL)
	form.Set("remark", remark)

	body, err := f.postForm(ctx, "/api/create-order", form)
	if err != nil {
		return nil, err
	}

	var resp createOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.Log.Errorw("gateway returned non-JSON create-order response", "order_id", orderID, "error", err)
		return nil, ErrInvalidGatewayResponse
	}
	if resp.Status == "" {
		logger.Log.Errorw("gateway create-order response missing status", "order_id", orderID)
		return nil, ErrInvalidGatewayResponse
	}

	result := &CreateOrderResult{
		Status:  resp.Status,
		Message: resp.Message,
	}
	if resp.Result != nil {
		result.PaymentURL = resp.Result.PaymentURL
	}
	return result, nil
}

// CheckOrderStatus forwards a status-check request to the gateway.
func (f *PaymentGatewayFacade) CheckOrderStatus(ctx context.Context, orderID string) (*OrderStatusResult, error) {
	form := url.Values{}
	form.Set("user_token", f.userToken)
	form.Set("order_id", orderID)

	body, err := f.postForm(ctx, "/api/check-order-status", form)
	if err != nil {
		return nil, err
	}

	var resp orderStatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.Log.Errorw("gateway returned non-JSON status response", "order_id", orderID, "error", err)
		return nil, ErrInvalidGatewayResponse
	}
	if resp.Status == "" {
		logger.Log.Errorw("gateway status response missing status", "order_id", orderID)
		return nil, ErrInvalidGatewayResponse
	}

	result := &OrderStatusResult{
		Status:  resp.Status,
		Message: resp.Message,
	}
	if resp.Data != nil {
		result.DataStatus = resp.Data.Status
		result.Amount = resp.Data.Amount
		result.TxnID = resp.Data.TxnID
	}
	return result, nil
}

func (f *PaymentGatewayFacade) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("gateway request failed", "path", path, "error", err)
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Log.Errorw("failed to read gateway response", "path", path, "error", err)
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	logger.Log.Infow("gateway response",
		"path", path,
		"http_status", resp.StatusCode,
		"size", len(body),
	)

	return body, nil
}
