package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"ethrpc/internal/method"
)

// ErrBatchCorrelation indicates that a wire batch response does not
// structurally match the batch request: wrong count, a response without an
// ID, or IDs that were never issued. This is a protocol violation by the
// peer, not a remote error for any particular call.
var ErrBatchCorrelation = errors.New("batch responses do not match requests")

// Result is the fallible outcome of one call inside a batch. Value holds the
// decoded result when Err is nil; Err is either a remote *Error or a local
// codec error.
type Result struct {
	Value any
	Err   error
}

// TryBatch executes an ordered collection of bound calls as one wire batch
// and returns per-call outcomes aligned with submission order, regardless of
// the order the peer returned the responses in.
//
// An empty batch short-circuits without a round trip.
func TryBatch(ctx context.Context, calls []method.Bound, roundtrip Roundtrip) ([]Result, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	requests := make([]*Request, len(calls))
	ids := make([]ID, len(calls))
	for i, call := range calls {
		req, err := NewRequest(call)
		if err != nil {
			return nil, err
		}
		requests[i] = req
		ids[i] = req.ID
	}

	body, err := json.Marshal(requests)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	respBody, err := roundtrip(ctx, body)
	if err != nil {
		return nil, err
	}

	var responses []*Response
	if err := json.Unmarshal(respBody, &responses); err != nil {
		return nil, fmt.Errorf("failed to parse batch response: %w", err)
	}

	ordered, err := correlate(ids, responses)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(calls))
	for i, resp := range ordered {
		if resp.HasError() {
			results[i] = Result{Err: resp.Err}
			continue
		}
		value, err := calls[i].DecodeResult(resp.Result)
		results[i] = Result{Value: value, Err: err}
	}
	return results, nil
}

// Batch executes a batch with all-or-nothing semantics: the first per-call
// error fails the whole batch, otherwise the decoded values are returned in
// submission order.
func Batch(ctx context.Context, calls []method.Bound, roundtrip Roundtrip) ([]any, error) {
	results, err := TryBatch(ctx, calls, roundtrip)
	if err != nil {
		return nil, err
	}
	values := make([]any, len(results))
	for i, result := range results {
		if result.Err != nil {
			return nil, result.Err
		}
		values[i] = result.Value
	}
	return values, nil
}

// correlate pairs responses with the issued ID sequence. Batch responses are
// not ordering-guaranteed by the protocol, but IDs were allocated
// monotonically in submission order, so sorting responses by ID must
// reproduce the issued sequence element-wise. Anything else, including
// well-formed but foreign IDs, is a correlation failure.
func correlate(ids []ID, responses []*Response) ([]*Response, error) {
	if len(responses) != len(ids) {
		return nil, fmt.Errorf("%w: got %d responses for %d requests", ErrBatchCorrelation, len(responses), len(ids))
	}
	for _, resp := range responses {
		if resp.ID == nil {
			return nil, fmt.Errorf("%w: response is missing an id", ErrBatchCorrelation)
		}
	}
	sort.Slice(responses, func(i, j int) bool {
		return *responses[i].ID < *responses[j].ID
	})
	for i, resp := range responses {
		if *resp.ID != ids[i] {
			return nil, fmt.Errorf("%w: unexpected response id %d", ErrBatchCorrelation, *resp.ID)
		}
	}
	return responses, nil
}
