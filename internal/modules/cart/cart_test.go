package cart

import (
	"testing"

	"github.com/Divyanshi070700/Undiyu-2/internal/modules/catalog"
)

func product(id, title string, price string) catalog.Product {
	return catalog.Product{
		ID:     id,
		Title:  title,
		Handle: "handle-" + id,
		Variant: catalog.Variant{
			ID:    "variant-" + id,
			Price: catalog.Money{Amount: price, CurrencyCode: "INR"},
		},
	}
}

func TestAddMergesByProductID(t *testing.T) {
	var c Cart
	p := product("p1", "Saree", "250.00")

	c.Add(p)
	c.Add(p)

	if len(c.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(c.Lines))
	}
	if c.Lines[0].Qty != 2 {
		t.Fatalf("qty = %d, want 2", c.Lines[0].Qty)
	}
}

func TestTotals(t *testing.T) {
	var c Cart
	c.Add(product("p1", "Saree", "250.00"))
	c.Add(product("p1", "Saree", "250.00"))
	c.Add(product("p2", "Kurta", "800.00"))

	if got := c.TotalItems(); got != 3 {
		t.Errorf("TotalItems = %d, want 3", got)
	}
	if got := c.TotalAmount(); got != 1300.00 {
		t.Errorf("TotalAmount = %v, want 1300.00", got)
	}
	if got := c.TotalMinorUnits(); got != 130000 {
		t.Errorf("TotalMinorUnits = %d, want 130000", got)
	}
}

func TestTotalMinorUnitsRounds(t *testing.T) {
	var c Cart
	// 3 x 33.33 = 99.99 -> 9999, no float drift allowed through truncation
	p := product("p1", "Dupatta", "33.33")
	c.Add(p)
	c.UpdateQty("p1", 3)

	if got := c.TotalMinorUnits(); got != 9999 {
		t.Fatalf("TotalMinorUnits = %d, want 9999", got)
	}
}

func TestUnparsablePriceCountsAsZero(t *testing.T) {
	var c Cart
	c.Add(product("p1", "Broken", "not-a-number"))
	c.Add(product("p2", "Kurta", "100.00"))

	if got := c.TotalAmount(); got != 100.00 {
		t.Fatalf("TotalAmount = %v, want 100.00", got)
	}
}

func TestUpdateQtyZeroRemoves(t *testing.T) {
	var c Cart
	c.Add(product("p1", "Saree", "250.00"))
	c.Add(product("p2", "Kurta", "800.00"))

	c.UpdateQty("p1", 0)

	if len(c.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(c.Lines))
	}
	if c.Lines[0].Product.ID != "p2" {
		t.Fatalf("remaining line = %s, want p2", c.Lines[0].Product.ID)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	var c Cart
	c.Add(product("p1", "Saree", "250.00"))

	c.Remove("missing")

	if len(c.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(c.Lines))
	}
}

func TestUpdateQtyAbsentIsNoop(t *testing.T) {
	var c Cart
	c.UpdateQty("missing", 5)

	if len(c.Lines) != 0 {
		t.Fatalf("lines = %d, want 0", len(c.Lines))
	}
}

func TestSummaryWireShape(t *testing.T) {
	var c Cart
	c.Add(product("gid://shopify/Product/1", "Saree", "250.00"))
	c.UpdateQty("gid://shopify/Product/1", 2)

	sum := c.Summary()
	if len(sum) != 1 {
		t.Fatalf("summary lines = %d, want 1", len(sum))
	}
	ln := sum[0]
	if ln.ID != "gid://shopify/Product/1" || ln.Title != "Saree" || ln.Quantity != 2 || ln.Price != 250.00 {
		t.Fatalf("unexpected summary line: %+v", ln)
	}
	if ln.Handle != "handle-gid://shopify/Product/1" {
		t.Fatalf("handle = %q", ln.Handle)
	}
}

func TestStoreIsolatesSessions(t *testing.T) {
	s := NewStore()
	s.Add("sess-a", product("p1", "Saree", "250.00"))
	s.Add("sess-b", product("p2", "Kurta", "800.00"))

	a := s.Snapshot("sess-a")
	b := s.Snapshot("sess-b")

	if len(a.Lines) != 1 || a.Lines[0].Product.ID != "p1" {
		t.Fatalf("session a cart: %+v", a.Lines)
	}
	if len(b.Lines) != 1 || b.Lines[0].Product.ID != "p2" {
		t.Fatalf("session b cart: %+v", b.Lines)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Add("sess", product("p1", "Saree", "250.00"))

	snap := s.Snapshot("sess")
	snap.Lines[0].Qty = 99
	snap.Clear()

	if got := s.Snapshot("sess"); len(got.Lines) != 1 || got.Lines[0].Qty != 1 {
		t.Fatalf("stored cart mutated through snapshot: %+v", got.Lines)
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Add("sess", product("p1", "Saree", "250.00"))
	s.Clear("sess")

	if got := s.Snapshot("sess"); len(got.Lines) != 0 {
		t.Fatalf("cart not cleared: %+v", got.Lines)
	}
}
