package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
)

// mockwebhook signs and posts a fake Razorpay webhook against a local server,
// or prints the checkout callback signature for a given order/payment pair.

type webhookPayload struct {
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

func main() {
	url := flag.String("url", "http://localhost:8080/webhooks/razorpay", "Webhook URL")
	secret := flag.String("secret", os.Getenv("RAZORPAY_WEBHOOK_SECRET"), "Webhook secret")
	keySecret := flag.String("key-secret", os.Getenv("RAZORPAY_KEY_SECRET"), "Key secret (for -checkout-sig)")
	eventID := flag.String("event-id", "evt_"+randomHex(8), "Event ID header")
	eventType := flag.String("type", "payment.captured", "Event type (payment.captured, payment.failed)")
	orderRef := flag.String("order", "order_"+randomHex(6), "Gateway order id")
	paymentRef := flag.String("payment", "pay_"+randomHex(6), "Gateway payment id")
	amount := flag.Int64("amount", 130000, "Amount in paise")
	currency := flag.String("currency", "INR", "Currency")
	checkoutSig := flag.Bool("checkout-sig", false, "Only print the checkout callback signature for -order/-payment")
	dryRun := flag.Bool("dry-run", false, "Only print signature header, don't send")

	flag.Parse()

	if *checkoutSig {
		if *keySecret == "" {
			fmt.Fprintf(os.Stderr, "Error: key secret not provided and RAZORPAY_KEY_SECRET not set\n")
			os.Exit(1)
		}
		sig := signHex([]byte(*keySecret), []byte(*orderRef+"|"+*paymentRef))
		fmt.Printf("razorpay_order_id:   %s\n", *orderRef)
		fmt.Printf("razorpay_payment_id: %s\n", *paymentRef)
		fmt.Printf("razorpay_signature:  %s\n", sig)
		return
	}

	if *secret == "" {
		fmt.Fprintf(os.Stderr, "Error: secret not provided and RAZORPAY_WEBHOOK_SECRET not set\n")
		os.Exit(1)
	}

	payload := webhookPayload{Event: *eventType}
	payload.Payload.Payment.Entity.ID = *paymentRef
	payload.Payload.Payment.Entity.OrderID = *orderRef
	payload.Payload.Payment.Entity.Amount = *amount
	payload.Payload.Payment.Entity.Currency = *currency

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", err)
		os.Exit(1)
	}

	sig := signHex([]byte(*secret), body)

	fmt.Printf("X-Razorpay-Signature: %s\n", sig)
	fmt.Printf("X-Razorpay-Event-Id: %s\n", *eventID)
	fmt.Printf("Body: %s\n", string(body))

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	fmt.Printf("\nSending to %s...\n", *url)
	req, err := http.NewRequest("POST", *url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Razorpay-Signature", sig)
	req.Header.Set("X-Razorpay-Event-Id", *eventID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Response: %s\n", string(respBody))

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}

func signHex(secret, payload []byte) string {
	m := hmac.New(sha256.New, secret)
	m.Write(payload)
	return hex.EncodeToString(m.Sum(nil))
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "fallback"
	}
	return hex.EncodeToString(b)
}
