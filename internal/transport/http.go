package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTP is a Transport that POSTs JSON-RPC bodies to a node's HTTP endpoint.
// It is safe for concurrent use.
type HTTP struct {
	url        string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHTTP creates an HTTP transport for the given RPC URL.
func NewHTTP(url string, requestTimeout time.Duration, logger zerolog.Logger) *HTTP {
	httpTransport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  true,
	}

	return &HTTP{
		url: url,
		httpClient: &http.Client{
			Transport: httpTransport,
			Timeout:   requestTimeout,
		},
		logger: logger.With().Str("component", "http").Logger(),
	}
}

// RoundTrip implements Transport
func (t *HTTP) RoundTrip(ctx context.Context, req []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(req))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	t.logger.Debug().Int("requestBytes", len(req)).Int("responseBytes", len(body)).Msg("round trip completed")
	return body, nil
}

// Close releases idle connections.
func (t *HTTP) Close() {
	t.httpClient.CloseIdleConnections()
}
