package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Divyanshi070700/Undiyu-2/internal/config"
)

const productQuery = `{
  products(first: %d) {
    edges {
      node {
        id
        title
        handle
        description
        images(first: 1) {
          edges { node { url altText } }
        }
        variants(first: 1) {
          edges {
            node {
              id
              price { amount currencyCode }
              compareAtPrice { amount currencyCode }
              availableForSale
            }
          }
        }
        vendor
        productType
      }
    }
  }
}`

// Client issues the fixed storefront query against the Shopify Storefront
// GraphQL endpoint.
type Client struct {
	http     *http.Client
	endpoint string
	token    string
	limit    int
}

func NewClient(cfg config.ShopifyConfig) *Client {
	return &Client{
		http:     &http.Client{Timeout: 15 * time.Second},
		endpoint: fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.Domain, cfg.APIVersion),
		token:    cfg.Token,
		limit:    cfg.ProductLimit,
	}
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type productsResponse struct {
	Data struct {
		Products struct {
			Edges []struct {
				Node struct {
					ID          string `json:"id"`
					Title       string `json:"title"`
					Handle      string `json:"handle"`
					Description string `json:"description"`
					Images      struct {
						Edges []struct {
							Node Image `json:"node"`
						} `json:"edges"`
					} `json:"images"`
					Variants struct {
						Edges []struct {
							Node Variant `json:"node"`
						} `json:"edges"`
					} `json:"variants"`
					Vendor      string `json:"vendor"`
					ProductType string `json:"productType"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	} `json:"data"`
}

// FetchProducts runs the storefront query and flattens the edge/node shapes
// into Product snapshots.
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	body, err := json.Marshal(graphqlRequest{Query: fmt.Sprintf(productQuery, c.limit)})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storefront query: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed productsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("storefront query: decode response: %w", err)
	}

	out := make([]Product, 0, len(parsed.Data.Products.Edges))
	for _, e := range parsed.Data.Products.Edges {
		n := e.Node
		p := Product{
			ID:          n.ID,
			Title:       n.Title,
			Handle:      n.Handle,
			Description: n.Description,
			Vendor:      n.Vendor,
			ProductType: n.ProductType,
		}
		if len(n.Images.Edges) > 0 {
			img := n.Images.Edges[0].Node
			p.Image = &img
		}
		if len(n.Variants.Edges) > 0 {
			p.Variant = n.Variants.Edges[0].Node
		}
		out = append(out, p)
	}
	return out, nil
}
