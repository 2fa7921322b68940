package jsonrpc

import (
	"context"
	"fmt"

	"ethrpc/internal/method"
)

// Roundtrip is one logical request/response exchange with a remote peer,
// abstracted away from any specific transport: given a serialized request
// body it returns the serialized response body or fails.
type Roundtrip func(ctx context.Context, req []byte) ([]byte, error)

// Call executes a single JSON-RPC call. It builds a request with a fresh ID,
// performs one round trip and decodes the typed result. Remote errors and
// codec failures are surfaced to the caller unmodified; there is no retry at
// this layer.
func Call[P, R any](ctx context.Context, m method.Method[P, R], params P, roundtrip Roundtrip) (R, error) {
	var zero R

	req, err := NewRequest(method.Bind(m, params))
	if err != nil {
		return zero, err
	}
	body, err := req.Bytes()
	if err != nil {
		return zero, fmt.Errorf("failed to marshal request: %w", err)
	}

	respBody, err := roundtrip(ctx, body)
	if err != nil {
		return zero, err
	}

	resp, err := ParseResponse(respBody)
	if err != nil {
		return zero, err
	}
	if resp.HasError() {
		return zero, resp.Err
	}
	return m.DecodeResult(resp.Result)
}
