package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testRazorpay(srvURL string) *Razorpay {
	return &Razorpay{
		http:          &http.Client{Timeout: 5 * time.Second},
		baseURL:       srvURL,
		keyID:         "rzp_test_key",
		keySecret:     "test_key_secret",
		webhookSecret: "test_webhook_secret",
	}
}

func TestCreateOrder(t *testing.T) {
	var gotBody razorpayOrderBody
	var gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		if r.URL.Path != "/orders" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(razorpayOrderResponse{
			ID:       "order_xyz",
			Amount:   gotBody.Amount,
			Currency: gotBody.Currency,
			Status:   "created",
		})
	}))
	defer srv.Close()

	r := testRazorpay(srv.URL)
	res, err := r.CreateOrder(context.Background(), CreateOrderRequest{
		AmountPaise: 130000,
		Currency:    "INR",
		Notes:       map[string]string{"items": "3"},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if gotUser != "rzp_test_key" || gotPass != "test_key_secret" {
		t.Errorf("basic auth = %q/%q", gotUser, gotPass)
	}
	if gotBody.Amount != 130000 || gotBody.Currency != "INR" {
		t.Errorf("request body: %+v", gotBody)
	}
	if gotBody.Receipt == "" {
		t.Error("receipt not generated")
	}
	if res.OrderRef != "order_xyz" || res.AmountPaise != 130000 || res.Currency != "INR" {
		t.Errorf("response: %+v", res)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"Authentication failed"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	r := testRazorpay(srv.URL)
	if _, err := r.CreateOrder(context.Background(), CreateOrderRequest{AmountPaise: 100, Currency: "INR"}); err == nil {
		t.Fatal("expected error on gateway 401")
	}
}

func TestCreateOrderMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	r := testRazorpay(srv.URL)
	if _, err := r.CreateOrder(context.Background(), CreateOrderRequest{AmountPaise: 100, Currency: "INR"}); err == nil {
		t.Fatal("expected error on empty order id")
	}
}

func TestVerifySignature(t *testing.T) {
	r := testRazorpay("")

	orderRef, paymentRef := "order_xyz", "pay_abc"
	good := signHex([]byte("test_key_secret"), []byte(orderRef+"|"+paymentRef))

	if !r.VerifySignature(PaymentResult{OrderRef: orderRef, PaymentRef: paymentRef, Signature: good}) {
		t.Fatal("valid signature rejected")
	}
	if r.VerifySignature(PaymentResult{OrderRef: orderRef, PaymentRef: paymentRef, Signature: "deadbeef"}) {
		t.Fatal("forged signature accepted")
	}
	if r.VerifySignature(PaymentResult{OrderRef: orderRef, PaymentRef: "pay_other", Signature: good}) {
		t.Fatal("signature accepted for a different payment")
	}
	if r.VerifySignature(PaymentResult{OrderRef: orderRef, PaymentRef: paymentRef}) {
		t.Fatal("empty signature accepted")
	}
	if r.VerifySignature(PaymentResult{Signature: good}) {
		t.Fatal("empty refs accepted")
	}
}

func webhookBody(event string) []byte {
	return []byte(`{
	  "event": "` + event + `",
	  "payload": {
	    "payment": {
	      "entity": {
	        "id": "pay_abc",
	        "order_id": "order_xyz",
	        "amount": 130000,
	        "currency": "INR"
	      }
	    }
	  }
	}`)
}

func TestVerifyAndParseWebhook(t *testing.T) {
	r := testRazorpay("")
	body := webhookBody("payment.captured")

	h := http.Header{}
	h.Set("X-Razorpay-Signature", signHex([]byte("test_webhook_secret"), body))
	h.Set("X-Razorpay-Event-Id", "evt_001")

	ev, err := r.VerifyAndParseWebhook(h, body)
	if err != nil {
		t.Fatalf("VerifyAndParseWebhook: %v", err)
	}
	if ev.EventID != "evt_001" || ev.Type != "payment.captured" {
		t.Errorf("event: %+v", ev)
	}
	if ev.OrderRef != "order_xyz" || ev.PaymentRef != "pay_abc" || ev.AmountPaise != 130000 || ev.Currency != "INR" {
		t.Errorf("event payload: %+v", ev)
	}
}

func TestVerifyAndParseWebhookBadSignature(t *testing.T) {
	r := testRazorpay("")
	body := webhookBody("payment.captured")

	h := http.Header{}
	h.Set("X-Razorpay-Signature", "deadbeef")

	if _, err := r.VerifyAndParseWebhook(h, body); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("err = %v, want ErrSignatureMismatch", err)
	}

	if _, err := r.VerifyAndParseWebhook(http.Header{}, body); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("missing header: err = %v, want ErrSignatureMismatch", err)
	}
}

func TestVerifyAndParseWebhookUnknownEvent(t *testing.T) {
	r := testRazorpay("")
	body := webhookBody("refund.processed")

	h := http.Header{}
	h.Set("X-Razorpay-Signature", signHex([]byte("test_webhook_secret"), body))

	if _, err := r.VerifyAndParseWebhook(h, body); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("err = %v, want ErrUnknownEvent", err)
	}
}

func TestVerifyAndParseWebhookEventIDFallback(t *testing.T) {
	r := testRazorpay("")
	body := webhookBody("payment.failed")

	h := http.Header{}
	h.Set("X-Razorpay-Signature", signHex([]byte("test_webhook_secret"), body))

	ev, err := r.VerifyAndParseWebhook(h, body)
	if err != nil {
		t.Fatalf("VerifyAndParseWebhook: %v", err)
	}
	if ev.EventID != "payment.failed:pay_abc" {
		t.Fatalf("fallback event id = %q", ev.EventID)
	}
}
