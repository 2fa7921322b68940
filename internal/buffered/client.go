// Package buffered provides a coalescing JSON-RPC client: concurrent single
// calls issued by independent callers are transparently grouped into wire
// batch requests, without breaking the illusion that each caller made an
// isolated call.
//
// The client itself implements the transport round-trip interface, so typed
// calls layer on top of it the same way they do on a plain transport.
package buffered

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"ethrpc/internal/jsonrpc"
	"ethrpc/internal/transport"
)

// Default configuration values
const (
	DefaultMaxBatchSize = 20
)

// Config governs the coalescing policy. It affects latency and throughput
// only, never correctness.
type Config struct {
	// MaxConcurrentRequests bounds how many chunks may be in flight at
	// once. Zero or negative means unbounded. Exclusive transports are
	// clamped to 1 regardless.
	MaxConcurrentRequests int
	// MaxBatchSize closes a chunk once it holds this many pending calls.
	MaxBatchSize int
	// CoalescingDelay is how long a chunk stays open after its first call
	// arrived. Zero means flush as soon as the collector wakes, taking
	// whatever is already queued.
	CoalescingDelay time.Duration
}

type outcome struct {
	body []byte
	err  error
}

// pendingCall pairs a serialized request with its single-use completion
// sink. The sink is resolved exactly once.
type pendingCall struct {
	request []byte
	id      jsonrpc.ID
	done    chan outcome
}

// Client is a buffered coalescing JSON-RPC client. One background collector
// goroutine owns the transport; arbitrarily many callers may issue round
// trips concurrently.
type Client struct {
	transport transport.Transport
	queue     *queue
	sem       *semaphore.Weighted
	maxSize   int
	delay     time.Duration
	logger    zerolog.Logger

	wg sync.WaitGroup
}

// New creates a buffered client over the given transport and starts its
// background collector.
func New(t transport.Transport, cfg Config, logger zerolog.Logger) *Client {
	maxSize := cfg.MaxBatchSize
	if maxSize <= 0 {
		maxSize = DefaultMaxBatchSize
	}

	concurrency := cfg.MaxConcurrentRequests
	if transport.IsExclusive(t) {
		// A transport that cannot be reentered serializes all
		// dispatch, even when configured as unbounded.
		concurrency = 1
	}
	var sem *semaphore.Weighted
	if concurrency > 0 {
		sem = semaphore.NewWeighted(int64(concurrency))
	}

	c := &Client{
		transport: t,
		queue:     newQueue(),
		sem:       sem,
		maxSize:   maxSize,
		delay:     cfg.CoalescingDelay,
		logger:    logger.With().Str("component", "buffered").Logger(),
	}

	c.wg.Add(1)
	go c.collect()

	return c
}

// RoundTrip implements the transport round-trip interface. The call is
// enqueued for coalescing and the caller suspends until its outcome is
// delivered.
//
// When ctx is cancelled the caller stops waiting, but the accepted call
// still runs to completion and its sink is resolved and discarded.
func (c *Client) RoundTrip(ctx context.Context, req []byte) ([]byte, error) {
	var probe struct {
		ID *jsonrpc.ID `json:"id"`
	}
	if err := json.Unmarshal(req, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse request envelope: %w", err)
	}
	if probe.ID == nil {
		return nil, fmt.Errorf("request has no id")
	}

	call := &pendingCall{
		request: req,
		id:      *probe.ID,
		done:    make(chan outcome, 1),
	}
	if !c.queue.push(call) {
		// Calling into a closed client is a lifecycle bug in the
		// embedding application, not an error outcome.
		panic("buffered: call issued after client was closed")
	}

	select {
	case o, ok := <-call.done:
		if !ok {
			panic("buffered: background collector stopped without resolving call")
		}
		return o.body, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting new calls, flushes everything already accepted and
// waits for all outcomes to be delivered.
func (c *Client) Close() {
	c.queue.close()
	c.wg.Wait()
	c.logger.Info().Msg("buffered client closed")
}

// collect is the background task. It idles until a call arrives, collects a
// chunk, dispatches it, and terminates only when the ingestion queue is
// closed and fully drained.
func (c *Client) collect() {
	defer c.wg.Done()

	for {
		first, ok := c.queue.next()
		if !ok {
			return
		}

		chunk := make([]*pendingCall, 0, c.maxSize)
		chunk = append(chunk, first)

		if c.delay > 0 {
			timer := time.NewTimer(c.delay)
			for len(chunk) < c.maxSize {
				call, ok, timedOut := c.queue.nextBefore(timer.C)
				if timedOut || !ok {
					break
				}
				chunk = append(chunk, call)
			}
			timer.Stop()
		} else {
			for len(chunk) < c.maxSize {
				call, ok := c.queue.poll()
				if !ok {
					break
				}
				chunk = append(chunk, call)
			}
		}

		c.dispatch(chunk)
	}
}

// dispatch hands a closed chunk to a worker goroutine, blocking while the
// concurrency bound is saturated. Chunk formation stays sequential; only
// dispatch runs in parallel.
func (c *Client) dispatch(chunk []*pendingCall) {
	if c.sem != nil {
		_ = c.sem.Acquire(context.Background(), 1)
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if c.sem != nil {
			defer c.sem.Release(1)
		}
		if len(chunk) == 1 {
			c.dispatchSingle(chunk[0])
		} else {
			c.dispatchBatch(chunk)
		}
	}()
}

// dispatchSingle sends a chunk of one as a bare (non-array) wire request.
func (c *Client) dispatchSingle(call *pendingCall) {
	c.logger.Debug().Uint32("id", uint32(call.id)).Msg("dispatching single call")
	body, err := c.transport.RoundTrip(context.Background(), call.request)
	call.done <- outcome{body: body, err: err}
}

// dispatchBatch joins a chunk into one wire batch, re-correlates the batch
// response by ID and delivers each call's response to its sink. Chunk-scoped
// failures are fanned out identically to every call in the chunk.
func (c *Client) dispatchBatch(chunk []*pendingCall) {
	c.logger.Debug().Int("calls", len(chunk)).Msg("dispatching batch")

	respBody, err := c.transport.RoundTrip(context.Background(), joinRequests(chunk))
	if err != nil {
		c.fanOut(chunk, err)
		return
	}

	entries, err := splitResponses(respBody)
	if err != nil {
		c.fanOut(chunk, fmt.Errorf("%w: %v", jsonrpc.ErrBatchCorrelation, err))
		return
	}
	if err := c.correlate(chunk, entries); err != nil {
		c.fanOut(chunk, err)
	}
}

type wireResponse struct {
	id   jsonrpc.ID
	body json.RawMessage
}

// correlate pairs batch response entries with the chunk's pending calls by
// ID. Unlike a batch built in one place, a chunk's IDs were allocated in the
// callers' request-construction order, so both sides are sorted before the
// element-wise pairing check.
func (c *Client) correlate(chunk []*pendingCall, entries []wireResponse) error {
	if len(entries) != len(chunk) {
		return fmt.Errorf("%w: got %d responses for %d requests", jsonrpc.ErrBatchCorrelation, len(entries), len(chunk))
	}

	ordered := make([]*pendingCall, len(chunk))
	copy(ordered, chunk)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].id < ordered[j].id
	})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].id < entries[j].id
	})
	for i, entry := range entries {
		if entry.id != ordered[i].id {
			return fmt.Errorf("%w: unexpected response id %d", jsonrpc.ErrBatchCorrelation, entry.id)
		}
	}

	for i, entry := range entries {
		ordered[i].done <- outcome{body: entry.body}
	}
	return nil
}

// fanOut delivers one chunk-scoped failure to every call in the chunk,
// sharing a single root cause across all recipients.
func (c *Client) fanOut(chunk []*pendingCall, cause error) {
	c.logger.Warn().Err(cause).Int("calls", len(chunk)).Msg("chunk dispatch failed")
	shared := newSharedError(cause)
	for _, call := range chunk {
		call.done <- outcome{err: shared.Duplicate()}
	}
}

// joinRequests concatenates already-serialized request bodies into one wire
// batch array without re-parsing them.
func joinRequests(chunk []*pendingCall) []byte {
	total := 2
	for _, call := range chunk {
		total += len(call.request) + 1
	}

	var buf bytes.Buffer
	buf.Grow(total)
	buf.WriteByte('[')
	for i, call := range chunk {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(call.request)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

// splitResponses splits a wire batch response into its entries and extracts
// each entry's ID. Entries without an ID violate the batch contract.
func splitResponses(body []byte) ([]wireResponse, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("batch response is not an array: %v", err)
	}

	entries := make([]wireResponse, len(raw))
	for i, entry := range raw {
		var probe struct {
			ID *jsonrpc.ID `json:"id"`
		}
		if err := json.Unmarshal(entry, &probe); err != nil {
			return nil, fmt.Errorf("malformed batch entry: %v", err)
		}
		if probe.ID == nil {
			return nil, fmt.Errorf("batch entry is missing an id")
		}
		entries[i] = wireResponse{id: *probe.ID, body: entry}
	}
	return entries, nil
}
