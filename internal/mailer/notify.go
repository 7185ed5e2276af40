package mailer

import (
	"context"
	"fmt"

	"github.com/Divyanshi070700/Undiyu-2/internal/modules/orders"
)

// OrderNotifier mails the store mailbox when a payment is verified. It
// implements the checkout Notifier contract.
type OrderNotifier struct {
	Mailer   Service
	From     string
	FromName string
	To       string
}

func NewOrderNotifier(m Service, from, fromName, to string) *OrderNotifier {
	return &OrderNotifier{Mailer: m, From: from, FromName: fromName, To: to}
}

func (n *OrderNotifier) OrderPaid(ctx context.Context, o orders.Order, paymentRef string) error {
	if n.Mailer == nil || n.To == "" {
		return nil
	}

	amount := fmt.Sprintf("%.2f %s", float64(o.AmountPaise)/100, o.Currency)
	subject := fmt.Sprintf("Order paid: %s (%s)", o.ProviderRef, amount)

	textBody := fmt.Sprintf(
		"Order %s has been paid.\n\nGateway order: %s\nGateway payment: %s\nAmount: %s\n\nCart:\n%s\n",
		o.ID, o.ProviderRef, paymentRef, amount, string(o.CartJSON),
	)

	htmlBody := fmt.Sprintf(`
<html>
  <body style="font-family: sans-serif;">
    <h2>Order paid</h2>
    <p><strong>Order:</strong> %s</p>
    <p><strong>Gateway order:</strong> %s</p>
    <p><strong>Gateway payment:</strong> %s</p>
    <p><strong>Amount:</strong> %s</p>
  </body>
</html>
`, o.ID, o.ProviderRef, paymentRef, amount)

	return n.Mailer.Send(ctx, Email{
		FromName: n.FromName,
		From:     n.From,
		To:       []string{n.To},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	})
}
