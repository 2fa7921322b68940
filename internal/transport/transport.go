// Package transport defines the single round-trip boundary the engine
// consumes, plus HTTP and WebSocket implementations of it. The engine never
// assumes a specific framing: one logical request body produces exactly one
// logical response body, or a transport-level failure.
package transport

import "context"

// Transport performs one logical request/response exchange.
type Transport interface {
	RoundTrip(ctx context.Context, req []byte) ([]byte, error)
}

// Func adapts a function to the Transport interface.
type Func func(ctx context.Context, req []byte) ([]byte, error)

// RoundTrip implements Transport
func (f Func) RoundTrip(ctx context.Context, req []byte) ([]byte, error) {
	return f(ctx, req)
}

// Exclusive is implemented by transports whose underlying connection cannot
// serve more than one round trip at a time. Consumers that dispatch
// concurrently must clamp their effective concurrency to 1 for such
// transports, regardless of configuration.
type Exclusive interface {
	Exclusive() bool
}

// IsExclusive reports whether t requires exclusive access per round trip.
func IsExclusive(t Transport) bool {
	ex, ok := t.(Exclusive)
	return ok && ex.Exclusive()
}
