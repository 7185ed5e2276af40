package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Divyanshi070700/Undiyu-2/internal/config"
)

const razorpayAPIBase = "https://api.razorpay.com/v1"

// Razorpay talks to the Razorpay Orders API and checks the HMAC signatures
// the gateway produces for checkout callbacks and webhooks.
type Razorpay struct {
	http          *http.Client
	baseURL       string
	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpay(cfg config.RazorpayConfig) *Razorpay {
	return &Razorpay{
		http:          &http.Client{Timeout: 20 * time.Second},
		baseURL:       razorpayAPIBase,
		keyID:         cfg.KeyID,
		keySecret:     cfg.KeySecret,
		webhookSecret: cfg.WebhookSecret,
	}
}

func (r *Razorpay) Name() string  { return "razorpay" }
func (r *Razorpay) KeyID() string { return r.keyID }

type razorpayOrderBody struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func (r *Razorpay) CreateOrder(ctx context.Context, req CreateOrderRequest) (CreateOrderResponse, error) {
	receipt := req.Receipt
	if receipt == "" {
		receipt = "receipt_" + randomHex(8)
	}

	body, err := json.Marshal(razorpayOrderBody{
		Amount:   req.AmountPaise,
		Currency: req.Currency,
		Receipt:  receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return CreateOrderResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return CreateOrderResponse{}, err
	}
	httpReq.SetBasicAuth(r.keyID, r.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(httpReq)
	if err != nil {
		return CreateOrderResponse{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return CreateOrderResponse{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return CreateOrderResponse{}, fmt.Errorf("razorpay order create: status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed razorpayOrderResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return CreateOrderResponse{}, fmt.Errorf("razorpay order create: decode response: %w", err)
	}
	if parsed.ID == "" {
		return CreateOrderResponse{}, fmt.Errorf("razorpay order create: missing order id")
	}

	return CreateOrderResponse{
		OrderRef:    parsed.ID,
		AmountPaise: parsed.Amount,
		Currency:    parsed.Currency,
	}, nil
}

// VerifySignature checks the checkout callback signature:
// hex(HMAC-SHA256(key_secret, order_id + "|" + payment_id)).
func (r *Razorpay) VerifySignature(res PaymentResult) bool {
	if res.OrderRef == "" || res.PaymentRef == "" || res.Signature == "" {
		return false
	}
	expected := signHex([]byte(r.keySecret), []byte(res.OrderRef+"|"+res.PaymentRef))
	return hmac.Equal([]byte(expected), []byte(res.Signature))
}

type razorpayWebhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID       string `json:"id"`
				OrderID  string `json:"order_id"`
				Amount   int64  `json:"amount"`
				Currency string `json:"currency"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (r *Razorpay) VerifyAndParseWebhook(headers http.Header, body []byte) (WebhookEvent, error) {
	sig := headers.Get("X-Razorpay-Signature")
	if sig == "" {
		return WebhookEvent{}, ErrSignatureMismatch
	}
	expected := signHex([]byte(r.webhookSecret), body)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return WebhookEvent{}, ErrSignatureMismatch
	}

	var p razorpayWebhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return WebhookEvent{}, fmt.Errorf("razorpay webhook: decode payload: %w", err)
	}

	switch p.Event {
	case "payment.captured", "payment.failed":
	default:
		return WebhookEvent{}, ErrUnknownEvent
	}

	ent := p.Payload.Payment.Entity
	eventID := headers.Get("X-Razorpay-Event-Id")
	if eventID == "" {
		// Razorpay always sends the header; fall back to the payment id so
		// dedupe still has a stable key.
		eventID = p.Event + ":" + ent.ID
	}

	return WebhookEvent{
		EventID:     eventID,
		Type:        p.Event,
		OrderRef:    ent.OrderID,
		PaymentRef:  ent.ID,
		AmountPaise: ent.Amount,
		Currency:    ent.Currency,
	}, nil
}

func signHex(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "fallback"
	}
	return hex.EncodeToString(b)
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
