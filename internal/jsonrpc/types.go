// Package jsonrpc implements the JSON-RPC 2.0 envelope model together with
// the single-call and batch-correlation engines used to talk to
// Ethereum-style nodes.
package jsonrpc

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
)

// Version is the JSON-RPC version
const Version = "2.0"

// ID is a request/response ID.
//
// A uint32 is used so the value always fits losslessly in a float64 and obeys
// the "SHOULD NOT have fractional parts" rule from JSON-RPC 2.0. IDs are
// allocated exclusively by the engine; callers never supply their own.
type ID uint32

var idCounter atomic.Uint32

// NextID allocates a fresh ID from the monotonically increasing counter.
// Within one process the returned sequence is strictly increasing, so a batch
// built in submission order carries a sorted ID sequence.
func NextID() ID {
	return ID(idCounter.Add(1))
}

// Error represents a well-formed JSON-RPC error returned by the remote peer.
// It is distinct from local codec failures, which surface as ordinary errors.
type Error struct {
	Code    ErrorCode       `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new JSON-RPC error
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// ErrorCode is a JSON-RPC error code. The integer value is preserved as-is
// so encoding always round-trips exactly; Kind classifies it into the ranges
// defined by JSON-RPC 2.0.
type ErrorCode int32

// Standard JSON-RPC error codes
const (
	CodeParseError     ErrorCode = -32700
	CodeInvalidRequest ErrorCode = -32600
	CodeMethodNotFound ErrorCode = -32601
	CodeInvalidParams  ErrorCode = -32602
	CodeInternalError  ErrorCode = -32603
)

// ErrorKind is the classification of an ErrorCode.
type ErrorKind int

const (
	// KindOther covers codes outside every reserved range.
	KindOther ErrorKind = iota
	KindParseError
	KindInvalidRequest
	KindMethodNotFound
	KindInvalidParams
	KindInternalError
	// KindServerError covers the implementation-defined -32000..-32099 range.
	KindServerError
	// KindReserved covers the remaining reserved -32768..-32000 range.
	KindReserved
)

// Kind classifies the code. The mapping is total: every int32 falls into
// exactly one kind.
func (c ErrorCode) Kind() ErrorKind {
	switch {
	case c == CodeParseError:
		return KindParseError
	case c == CodeInvalidRequest:
		return KindInvalidRequest
	case c == CodeMethodNotFound:
		return KindMethodNotFound
	case c == CodeInvalidParams:
		return KindInvalidParams
	case c == CodeInternalError:
		return KindInternalError
	case c >= -32099 && c <= -32000:
		return KindServerError
	case c >= -32768 && c <= -32000:
		return KindReserved
	default:
		return KindOther
	}
}

func (c ErrorCode) String() string {
	switch c.Kind() {
	case KindParseError:
		return "parse error"
	case KindInvalidRequest:
		return "invalid request"
	case KindMethodNotFound:
		return "method not found"
	case KindInvalidParams:
		return "invalid params"
	case KindInternalError:
		return "internal error"
	case KindServerError:
		return fmt.Sprintf("server error (%d)", int32(c))
	case KindReserved:
		return fmt.Sprintf("reserved (%d)", int32(c))
	default:
		return fmt.Sprintf("%d", int32(c))
	}
}
