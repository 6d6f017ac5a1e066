package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/models"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client consumes the catalog boundary:
//
//	GET {base}/products/{id}        -> {data: Product}
//	GET {base}/products?categories= -> {data: []Product}
//	GET {base}/categories           -> {data: []Category}
//	GET {base}/categories/{id}      -> {data: Category}
//
// Responses are normalized to the canonical Product shape here; shape
// ambiguity from upstream never reaches the rest of the service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// wireProduct keeps price optional so that an absent price can be told apart
// from a present zero price. Absent means the document is malformed and the
// fetch fails; zero is a valid price.
type wireProduct struct {
	ID          models.FlexID    `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *wirePrice       `json:"price"`
	Images      models.ImageList `json:"images"`
	Categories  []string         `json:"categories"`
}

type wirePrice struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
}

func (p *wireProduct) normalize() (*models.Product, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("product document has no id")
	}

	if p.Price == nil || p.Price.Amount == nil {
		return nil, fmt.Errorf("product %s has no price amount", p.ID)
	}

	return &models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price: models.Money{
			Amount:   *p.Price.Amount,
			Currency: p.Price.Currency,
		},
		Images:     p.Images,
		Categories: p.Categories,
	}, nil
}

// Product fetches and normalizes a single product by id.
func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	data, err := c.get(ctx, c.baseURL+"/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var wire wireProduct
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("malformed product payload for id %s: %w", id, err)
	}

	return wire.normalize()
}

// Products lists the catalog, optionally filtered by category ids.
// Products whose documents fail normalization are skipped.
func (c *Client) Products(ctx context.Context, categories []string) ([]models.Product, error) {
	endpoint := c.baseURL + "/products"
	if len(categories) > 0 {
		endpoint += "?categories=" + url.QueryEscape(strings.Join(categories, ","))
	}

	data, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var wires []wireProduct
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, fmt.Errorf("malformed product list payload: %w", err)
	}

	products := make([]models.Product, 0, len(wires))

	for i := range wires {
		product, err := wires[i].normalize()
		if err != nil {
			continue
		}

		products = append(products, *product)
	}

	return products, nil
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	data, err := c.get(ctx, c.baseURL+"/categories")
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("malformed category list payload: %w", err)
	}

	return categories, nil
}

func (c *Client) Category(ctx context.Context, id string) (*models.Category, error) {
	data, err := c.get(ctx, c.baseURL+"/categories/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := json.Unmarshal(data, &category); err != nil {
		return nil, fmt.Errorf("malformed category payload for id %s: %w", id, err)
	}

	return &category, nil
}

// get performs the request and unwraps the {success, message, data} envelope.
// A non-2xx status or a missing data field is an error.
func (c *Client) get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog returned status %d for %s", resp.StatusCode, endpoint)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("catalog response has no data for %s", endpoint)
	}

	return env.Data, nil
}
