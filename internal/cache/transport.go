package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"ethrpc/internal/jsonrpc"
	"ethrpc/internal/transport"
)

// Transport is a caching decorator around another transport. Single
// requests whose method and params satisfy the rules are served from the
// store when possible; everything else passes through untouched.
//
// Only result payloads are stored. A hit synthesizes a fresh response
// envelope carrying the incoming request's ID, since IDs are unique per
// request and must never be replayed from the store.
type Transport struct {
	next   transport.Transport
	store  Store
	rules  *Rules
	logger zerolog.Logger
}

// NewTransport wraps next with caching.
func NewTransport(next transport.Transport, store Store, rules *Rules, logger zerolog.Logger) *Transport {
	return &Transport{
		next:   next,
		store:  store,
		rules:  rules,
		logger: logger.With().Str("component", "cache").Logger(),
	}
}

// Exclusive mirrors the wrapped transport's concurrency contract.
func (t *Transport) Exclusive() bool {
	return transport.IsExclusive(t.next)
}

// RoundTrip implements the transport round-trip interface
func (t *Transport) RoundTrip(ctx context.Context, req []byte) ([]byte, error) {
	// Wire batches carry heterogeneous calls and are not worth splitting
	// at this layer; they bypass the cache.
	if len(req) > 0 && req[0] == '[' {
		return t.next.RoundTrip(ctx, req)
	}

	parsed, err := jsonrpc.ParseRequest(req)
	if err != nil {
		return t.next.RoundTrip(ctx, req)
	}

	if !t.rules.Cacheable(parsed.Method, parsed.Params) {
		return t.next.RoundTrip(ctx, req)
	}

	key := t.rules.Key(parsed.Method, parsed.Params)
	if result, ok := t.store.Get(key); ok {
		t.logger.Debug().Str("method", parsed.Method).Msg("cache hit")
		return synthesizeResponse(result, parsed.ID)
	}

	body, err := t.next.RoundTrip(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp, err := jsonrpc.ParseResponse(body); err == nil && !resp.HasError() {
		t.store.Set(key, resp.Result)
		t.logger.Debug().Str("method", parsed.Method).Msg("cache store")
	}
	return body, nil
}

func synthesizeResponse(result []byte, id jsonrpc.ID) ([]byte, error) {
	resp := jsonrpc.Response{Result: result, ID: &id}
	body, err := json.Marshal(&resp)
	if err != nil {
		return nil, fmt.Errorf("failed to build cached response: %w", err)
	}
	return body, nil
}
