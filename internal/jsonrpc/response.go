package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// Response represents a JSON-RPC response. Exactly one of Result/Err is
// authoritative; when a server returns both fields (observed in the wild for
// auto-mining nodes), the success value takes precedence. This leniency is
// deliberate and non-standard; do not extend it to other framing choices.
type Response struct {
	// Result holds the raw success payload. Nil when Err is set.
	Result json.RawMessage
	// Err holds the remote error. Nil when Result is set.
	Err *Error
	// ID is absent when the peer reports a protocol-level failure
	// (e.g. a malformed request) that cannot be attributed to a call.
	ID *ID
}

// HasError returns true if the response carries a remote error.
func (r *Response) HasError() bool {
	return r.Err != nil
}

type rawResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
	ID      *ID             `json:"id"`
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw rawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.JSONRPC != Version {
		return fmt.Errorf("invalid jsonrpc version: %q", raw.JSONRPC)
	}
	switch {
	case raw.Result != nil:
		// Result wins even when an error field is also present.
		r.Result = raw.Result
		r.Err = nil
	case raw.Error != nil:
		r.Result = nil
		r.Err = raw.Error
	default:
		return fmt.Errorf("response has neither result nor error")
	}
	r.ID = raw.ID
	return nil
}

// MarshalJSON implements json.Marshaler
func (r *Response) MarshalJSON() ([]byte, error) {
	raw := struct {
		JSONRPC string          `json:"jsonrpc"`
		Result  json.RawMessage `json:"result,omitempty"`
		Error   *Error          `json:"error,omitempty"`
		ID      *ID             `json:"id,omitempty"`
	}{
		JSONRPC: Version,
		Result:  r.Result,
		Error:   r.Err,
		ID:      r.ID,
	}
	return json.Marshal(raw)
}

// ParseResponse parses a JSON-RPC response from bytes
func ParseResponse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp, nil
}
