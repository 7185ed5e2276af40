package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleStorefrontResponse = `{
  "data": {
    "products": {
      "edges": [
        {
          "node": {
            "id": "gid://shopify/Product/1",
            "title": "Banarasi Saree",
            "handle": "banarasi-saree",
            "description": "Handwoven silk.",
            "images": {"edges": [{"node": {"url": "https://cdn/img1.jpg", "altText": "Saree"}}]},
            "variants": {"edges": [{"node": {
              "id": "gid://shopify/ProductVariant/11",
              "price": {"amount": "4999.00", "currencyCode": "INR"},
              "compareAtPrice": {"amount": "5999.00", "currencyCode": "INR"},
              "availableForSale": true
            }}]},
            "vendor": "Undhyu",
            "productType": "Saree"
          }
        },
        {
          "node": {
            "id": "gid://shopify/Product/2",
            "title": "Plain Kurta",
            "handle": "plain-kurta",
            "description": "",
            "images": {"edges": []},
            "variants": {"edges": []},
            "vendor": "Undhyu",
            "productType": "Kurta"
          }
        }
      ]
    }
  }
}`

func testClient(srv *httptest.Server, limit int) *Client {
	return &Client{
		http:     &http.Client{Timeout: 5 * time.Second},
		endpoint: srv.URL,
		token:    "test-token",
		limit:    limit,
	}
}

func TestFetchProducts(t *testing.T) {
	var gotToken, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Storefront-Access-Token")
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotQuery = req.Query
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleStorefrontResponse))
	}))
	defer srv.Close()

	c := testClient(srv, 12)
	items, err := c.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}

	if gotToken != "test-token" {
		t.Errorf("token header = %q", gotToken)
	}
	if !strings.Contains(gotQuery, "products(first: 12)") {
		t.Errorf("query misses product limit: %q", gotQuery)
	}

	if len(items) != 2 {
		t.Fatalf("products = %d, want 2", len(items))
	}

	p := items[0]
	if p.ID != "gid://shopify/Product/1" || p.Title != "Banarasi Saree" || p.Handle != "banarasi-saree" {
		t.Errorf("product 1: %+v", p)
	}
	if p.Image == nil || p.Image.URL != "https://cdn/img1.jpg" {
		t.Errorf("image: %+v", p.Image)
	}
	if p.Variant.Price.Amount != "4999.00" || p.Variant.Price.CurrencyCode != "INR" {
		t.Errorf("price: %+v", p.Variant.Price)
	}
	if p.Variant.CompareAtPrice == nil || p.Variant.CompareAtPrice.Amount != "5999.00" {
		t.Errorf("compareAtPrice: %+v", p.Variant.CompareAtPrice)
	}
	if !p.Variant.AvailableForSale {
		t.Error("availableForSale = false")
	}
	if p.UnitPrice() != 4999.00 {
		t.Errorf("UnitPrice = %v", p.UnitPrice())
	}

	// no image, no variant: zero values, price 0
	q := items[1]
	if q.Image != nil {
		t.Errorf("product 2 image: %+v", q.Image)
	}
	if q.UnitPrice() != 0 {
		t.Errorf("product 2 UnitPrice = %v", q.UnitPrice())
	}
}

func TestFetchProductsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := testClient(srv, 12)
	if _, err := c.FetchProducts(context.Background()); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestFetchProductsBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	c := testClient(srv, 12)
	if _, err := c.FetchProducts(context.Background()); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestMoneyFloat(t *testing.T) {
	cases := []struct {
		amount string
		want   float64
	}{
		{"4999.00", 4999},
		{"0.50", 0.5},
		{"", 0},
		{"abc", 0},
	}
	for _, tc := range cases {
		if got := (Money{Amount: tc.amount}).Float(); got != tc.want {
			t.Errorf("Float(%q) = %v, want %v", tc.amount, got, tc.want)
		}
	}
}
