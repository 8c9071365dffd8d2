package botcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/creatorloop/creatorloop-api/internal/config"
)

var ErrTokenRejected = errors.New("bot verification token rejected")

// HTTPVerifier posts the form's bot-verification token to the challenge
// provider's siteverify endpoint.
type HTTPVerifier struct {
	verifyURL string
	secret    string
	client    *http.Client
}

func NewHTTPVerifier(cfg config.Config) *HTTPVerifier {
	return &HTTPVerifier{
		verifyURL: cfg.BotCheck.VerifyURL,
		secret:    cfg.BotCheck.Secret,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (v *HTTPVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	if token == "" {
		return ErrTokenRejected
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode verification response: %w", err)
	}
	if !body.Success {
		return fmt.Errorf("%w: %s", ErrTokenRejected, strings.Join(body.ErrorCodes, ", "))
	}
	return nil
}
