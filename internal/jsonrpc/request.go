package jsonrpc

import (
	"encoding/json"
	"fmt"

	"ethrpc/internal/method"
)

// Request represents a JSON-RPC request
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      ID              `json:"id"`
}

// Notification is a request without an ID. The engine never expects a
// response to one; it is defined for completeness of the envelope model.
type Notification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NewRequest builds a request for a bound call with a freshly allocated ID.
func NewRequest(call method.Bound) (*Request, error) {
	params, err := call.EncodeParams()
	if err != nil {
		return nil, err
	}
	return &Request{
		JSONRPC: Version,
		Method:  call.Name(),
		Params:  params,
		ID:      NextID(),
	}, nil
}

// NewNotification builds a notification for a bound call.
func NewNotification(call method.Bound) (*Notification, error) {
	params, err := call.EncodeParams()
	if err != nil {
		return nil, err
	}
	return &Notification{
		JSONRPC: Version,
		Method:  call.Name(),
		Params:  params,
	}, nil
}

// Validate checks if the request is valid
func (r *Request) Validate() error {
	if r.JSONRPC != Version {
		return fmt.Errorf("invalid jsonrpc version: %s", r.JSONRPC)
	}
	if r.Method == "" {
		return fmt.Errorf("method is required")
	}
	return nil
}

// Bytes returns the request as JSON bytes
func (r *Request) Bytes() ([]byte, error) {
	return json.Marshal(r)
}

// ParseRequest parses a single JSON-RPC request from bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}
