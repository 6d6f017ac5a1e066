package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/models"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client consumes the order boundary: POST {base}/checkout to create an
// order and GET {base}/orders for the read-only history.
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

// CreateOrder submits the payload. Any 2xx is success; a non-2xx status and
// a transport error are surfaced identically, so the caller treats both as
// one retry-eligible failure.
func (c *Client) CreateOrder(ctx context.Context, payload *models.OrderPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building checkout request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	return nil
}

// Orders fetches the order history for display.
func (c *Client) Orders(ctx context.Context) ([]models.OrderRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders", nil)
	if err != nil {
		return nil, fmt.Errorf("building orders request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("orders request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	var env struct {
		Success bool                 `json:"success"`
		Data    []models.OrderRecord `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding orders response: %w", err)
	}

	return env.Data, nil
}
