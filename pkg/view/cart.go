package view

import (
	"github.com/Divyanshi070700/Undiyu-2/internal/modules/cart"
)

type CartItem struct {
	ProductID    string  `json:"product_id"`
	Title        string  `json:"title"`
	Handle       string  `json:"handle"`
	ImageURL     string  `json:"image_url,omitempty"`
	Qty          int     `json:"qty"`
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
	DisplayPrice string  `json:"display_price"`
}

type CartPage struct {
	Items        []CartItem `json:"items"`
	Count        int        `json:"count"`
	Total        float64    `json:"total"`
	DisplayTotal string     `json:"display_total"`
	Currency     string     `json:"currency"`
}

// CartPageFrom builds the wire view of a cart snapshot. Currency comes from
// the first priced line; INR is the storefront default.
func CartPageFrom(c cart.Cart) CartPage {
	currency := "INR"
	for _, ln := range c.Lines {
		if code := ln.Product.Variant.Price.CurrencyCode; code != "" {
			currency = code
			break
		}
	}

	page := CartPage{Items: make([]CartItem, 0, len(c.Lines)), Currency: currency}
	for _, ln := range c.Lines {
		unit := ln.Product.UnitPrice()
		item := CartItem{
			ProductID:    ln.Product.ID,
			Title:        ln.Product.Title,
			Handle:       ln.Product.Handle,
			Qty:          ln.Qty,
			UnitPrice:    unit,
			LineTotal:    unit * float64(ln.Qty),
			DisplayPrice: FormatMoney(currency, unit),
		}
		if ln.Product.Image != nil {
			item.ImageURL = ln.Product.Image.URL
		}
		page.Items = append(page.Items, item)
	}

	page.Count = c.TotalItems()
	page.Total = c.TotalAmount()
	page.DisplayTotal = FormatMoney(currency, page.Total)
	return page
}
