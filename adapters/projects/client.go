package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/creatorloop/creatorloop-api/internal/config"
	"github.com/creatorloop/creatorloop-api/internal/domain/project"
)

// HTTPClient talks to the projects service. Callers on the profile render
// path treat every error from here as cosmetic.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(cfg config.Config) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.Projects.BaseURL,
		client:  &http.Client{Timeout: cfg.Projects.Timeout},
	}
}

func (c *HTTPClient) ListByUsername(ctx context.Context, username string) ([]project.Project, error) {
	endpoint := fmt.Sprintf("%s/users/%s/projects/", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build projects request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("projects request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("projects service returned status %d", resp.StatusCode)
	}

	var listing project.Listing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode projects listing: %w", err)
	}
	return listing.Merged(), nil
}
