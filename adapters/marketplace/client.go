package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/creatorloop/creatorloop-api/internal/config"
	mkt "github.com/creatorloop/creatorloop-api/internal/domain/marketplace"
)

type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPClient(cfg config.Config) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.Marketplace.BaseURL,
		apiKey:  cfg.Marketplace.APIKey,
		client:  &http.Client{Timeout: cfg.Marketplace.Timeout},
	}
}

func (c *HTTPClient) ListProductsByCreator(ctx context.Context, username string) ([]mkt.Product, error) {
	endpoint := fmt.Sprintf("%s/creators/%s/products", c.baseURL, url.PathEscape(username))

	var body struct {
		Products []mkt.Product `json:"products"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	return body.Products, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, productID string) (*mkt.Product, error) {
	endpoint := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(productID))

	var product mkt.Product
	if err := c.getJSON(ctx, endpoint, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, in mkt.CheckoutInput) (*mkt.CheckoutSession, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/sessions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("marketplace returned status %d for checkout", resp.StatusCode)
	}

	var session mkt.CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	return &session, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build marketplace request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("marketplace request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("marketplace returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode marketplace response: %w", err)
	}
	return nil
}
