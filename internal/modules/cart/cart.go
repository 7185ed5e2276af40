package cart

import (
	"math"

	"github.com/Divyanshi070700/Undiyu-2/internal/modules/catalog"
)

// Line is one cart entry: a product snapshot plus a quantity. A cart holds at
// most one line per product id.
type Line struct {
	Product catalog.Product `json:"product"`
	Qty     int             `json:"qty"`
}

// Cart is an insertion-ordered sequence of lines. The zero value is an empty
// cart. Methods mutate in place; Snapshot (on the store) hands out copies.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges into the existing line for the product id, or appends a new line
// with quantity 1. No upper bound on quantity.
func (c *Cart) Add(p catalog.Product) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == p.ID {
			c.Lines[i].Qty++
			return
		}
	}
	c.Lines = append(c.Lines, Line{Product: p, Qty: 1})
}

// Remove deletes the line for the product id; removing an absent id is a
// no-op, not an error.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// UpdateQty sets the line quantity. Quantity 0 removes the line.
func (c *Cart) UpdateQty(productID string, qty int) {
	if qty == 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			c.Lines[i].Qty = qty
			return
		}
	}
}

func (c *Cart) Clear() { c.Lines = nil }

// TotalItems is the sum of line quantities.
func (c *Cart) TotalItems() int {
	n := 0
	for _, ln := range c.Lines {
		n += ln.Qty
	}
	return n
}

// TotalAmount sums unit snapshot price times quantity over all lines. Lines
// whose price failed to parse contribute 0.
func (c *Cart) TotalAmount() float64 {
	total := 0.0
	for _, ln := range c.Lines {
		total += ln.Product.UnitPrice() * float64(ln.Qty)
	}
	return total
}

// TotalMinorUnits is the gateway amount: the total converted to the smallest
// currency denomination, rounded to the nearest integer.
func (c *Cart) TotalMinorUnits() int64 {
	return int64(math.Round(c.TotalAmount() * 100))
}

// LineSummary is the wire shape sent to the order-creation and verification
// endpoints.
type LineSummary struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Handle   string  `json:"handle"`
}

func (c *Cart) Summary() []LineSummary {
	out := make([]LineSummary, 0, len(c.Lines))
	for _, ln := range c.Lines {
		out = append(out, LineSummary{
			ID:       ln.Product.ID,
			Title:    ln.Product.Title,
			Quantity: ln.Qty,
			Price:    ln.Product.UnitPrice(),
			Handle:   ln.Product.Handle,
		})
	}
	return out
}
