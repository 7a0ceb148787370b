package infra

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrGatewayFailure = errors.New("failed to create payment order")

// GatewayOrder is the provider's payment intent. Amount is in the smallest
// currency unit.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type RazorpayClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	currency   string
	httpClient *http.Client
}

func NewRazorpayClient(baseURL, keyID, keySecret, currency string, timeout time.Duration) *RazorpayClient {
	return &RazorpayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		keyID:      keyID,
		keySecret:  keySecret,
		currency:   currency,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateOrder registers a payment intent for amount, given in whole currency
// units.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount int64) (*GatewayOrder, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":   amount * 100,
		"currency": c.currency,
		"receipt":  "receipt_" + uuid.New().String()[:8],
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: gateway returned status %d: %s", ErrGatewayFailure, resp.StatusCode, body)
	}

	var o GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGatewayFailure, err)
	}
	if o.ID == "" {
		return nil, fmt.Errorf("%w: gateway returned no order id", ErrGatewayFailure)
	}
	return &o, nil
}

func (c *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(Sign(c.keySecret, orderID, paymentID)), []byte(signature))
}

// Sign computes the checkout signature the provider attaches to a payment:
// hex(HMAC-SHA256(secret, orderID + "|" + paymentID)).
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
