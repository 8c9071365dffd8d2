package battles

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/creatorloop/creatorloop-api/internal/config"
	"github.com/creatorloop/creatorloop-api/internal/domain/battle"
)

// HTTPClient talks to the battles service. Callers on the profile render
// path treat every error from here as cosmetic.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(cfg config.Config) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.Battles.BaseURL,
		client:  &http.Client{Timeout: cfg.Battles.Timeout},
	}
}

func (c *HTTPClient) Summary(ctx context.Context, username string) (*battle.Summary, error) {
	endpoint := fmt.Sprintf("%s/users/%s/battles", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build battles request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("battles request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("battles service returned status %d", resp.StatusCode)
	}

	var summary battle.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("decode battles summary: %w", err)
	}
	return &summary, nil
}
