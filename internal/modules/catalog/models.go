package catalog

import "strconv"

type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Float parses the decimal amount; malformed or empty amounts count as 0 so
// cart totals never fail on bad catalog data.
func (m Money) Float() float64 {
	if m.Amount == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m.Amount, 64)
	if err != nil {
		return 0
	}
	return f
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type Variant struct {
	ID               string `json:"id"`
	Price            Money  `json:"price"`
	CompareAtPrice   *Money `json:"compareAtPrice,omitempty"`
	AvailableForSale bool   `json:"availableForSale"`
}

// Product is an immutable snapshot of one storefront product: first image,
// first variant. Fetched once per process, never mutated locally.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Handle      string  `json:"handle"`
	Description string  `json:"description"`
	Image       *Image  `json:"image,omitempty"`
	Variant     Variant `json:"variant"`
	Vendor      string  `json:"vendor"`
	ProductType string  `json:"productType"`
}

// UnitPrice is the snapshot price used for cart totals.
func (p Product) UnitPrice() float64 { return p.Variant.Price.Float() }
