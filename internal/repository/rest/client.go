package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ecokart-gateway/internal/domain"
	"ecokart-gateway/pkg/logger"

	"github.com/goccy/go-json"
)

// Client is the shared HTTP transport for the upstream storefront API.
// It handles token headers, JSON encoding and status-to-error mapping;
// per-resource repositories wrap it with typed methods.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// upstreamError is the error envelope the upstream uses. DRF-style APIs put
// the message under "detail"; some endpoints use "error".
type upstreamError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// do issues a request and decodes the JSON response into out (skipped when
// out is nil or the response has no body). 401/403 map to
// domain.ErrUnauthenticated, every other non-2xx status to *domain.RemoteError
// with the upstream detail message when one is present.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		// The upstream issues opaque tokens and expects the Token scheme.
		req.Header.Set("Authorization", "Token "+strings.TrimSpace(token))
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.UpstreamCall(method, path, 0, time.Since(start), err)
		return &domain.RemoteError{Message: "could not reach the store, please try again"}
	}
	defer resp.Body.Close()
	logger.UpstreamCall(method, path, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return domain.ErrUnauthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ue upstreamError
		// Best-effort decode; a non-JSON error body falls back to the status.
		_ = json.NewDecoder(resp.Body).Decode(&ue)
		msg := ue.Detail
		if msg == "" {
			msg = ue.Error
		}
		return &domain.RemoteError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.RemoteError{Status: resp.StatusCode, Message: "unexpected response from the store"}
	}
	return nil
}
