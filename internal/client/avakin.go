// Package client wraps the external Avakin gift API. The wrapper is a thin
// relay: it never retries and enforces no domain rules of its own — rate
// limits, ownership checks, and balance deduction all live upstream.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"avkngifts-api/internal/model"
)

// AvakinClient issues balance and gift requests against the external API.
type AvakinClient struct {
	httpClient     *http.Client
	giftHTTPClient *http.Client
	baseURL        string
}

// New creates a client for the given base URL. giftTimeout applies only to
// gift sends, which the upstream processes item-by-item with delays.
func New(baseURL string, timeout, giftTimeout time.Duration) *AvakinClient {
	return &AvakinClient{
		httpClient:     &http.Client{Timeout: timeout},
		giftHTTPClient: &http.Client{Timeout: giftTimeout},
		baseURL:        baseURL,
	}
}

// BalanceRaw performs GET /api/balance/{key} upstream and returns the status
// code and body verbatim.
func (c *AvakinClient) BalanceRaw(ctx context.Context, key string) (int, []byte, error) {
	endpoint := fmt.Sprintf("%s/api/balance/%s", c.baseURL, url.PathEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(c.httpClient, req)
}

// Balance performs a balance lookup and decodes the typed payload. A non-2xx
// upstream status is returned alongside a nil response so callers can map it.
func (c *AvakinClient) Balance(ctx context.Context, key string) (*BalanceResult, error) {
	status, body, err := c.BalanceRaw(ctx, key)
	if err != nil {
		return nil, err
	}

	result := &BalanceResult{StatusCode: status, Body: body}
	if status >= 200 && status < 300 {
		if err := json.Unmarshal(body, &result.Balance); err != nil {
			return nil, fmt.Errorf("failed to decode balance response: %w", err)
		}
	}
	return result, nil
}

// GiftRaw forwards a pre-encoded gift request body upstream and returns the
// status code and body verbatim.
func (c *AvakinClient) GiftRaw(ctx context.Context, body []byte) (int, []byte, error) {
	endpoint := c.baseURL + "/api/gift"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(c.giftHTTPClient, req)
}

// SendGifts encodes and forwards a gift request, decoding the typed response
// on a 2xx status.
func (c *AvakinClient) SendGifts(ctx context.Context, giftReq model.GiftRequest) (*GiftResult, error) {
	payload, err := json.Marshal(giftReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode gift request: %w", err)
	}

	status, body, err := c.GiftRaw(ctx, payload)
	if err != nil {
		return nil, err
	}

	result := &GiftResult{StatusCode: status, Body: body}
	if status >= 200 && status < 300 {
		if err := json.Unmarshal(body, &result.Response); err != nil {
			return nil, fmt.Errorf("failed to decode gift response: %w", err)
		}
	}
	return result, nil
}

func (c *AvakinClient) do(hc *http.Client, req *http.Request) (int, []byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}
