package view

import "fmt"

// FormatMoney renders a major-unit amount with its currency symbol, the way
// the storefront shows prices.
func FormatMoney(currency string, amount float64) string {
	switch currency {
	case "INR":
		return fmt.Sprintf("₹%.2f", amount)
	case "USD":
		return fmt.Sprintf("$%.2f", amount)
	case "EUR":
		return fmt.Sprintf("€%.2f", amount)
	default:
		return fmt.Sprintf("%.2f %s", amount, currency)
	}
}
