package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"ethrpc/internal/method"
)

var echoMethod = method.New[[]int, int]("test_echo")

// echoNode answers every request with the first element of its params,
// mimicking a well-behaved single-method node.
func echoNode(ctx context.Context, req []byte) ([]byte, error) {
	var parsed Request
	if err := json.Unmarshal(req, &parsed); err != nil {
		return nil, err
	}
	var params []int
	if err := json.Unmarshal(parsed.Params, &params); err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf(`{"jsonrpc":"2.0","result":%d,"id":%d}`, params[0], parsed.ID)), nil
}

func TestCall_Success(t *testing.T) {
	got, err := Call(context.Background(), echoMethod, []int{41}, echoNode)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != 41 {
		t.Errorf("Call = %d, want 41", got)
	}
}

func TestCall_RemoteError(t *testing.T) {
	roundtrip := func(ctx context.Context, req []byte) ([]byte, error) {
		return []byte(`{"jsonrpc":"2.0","error":{"code":-32602,"message":"bad params"},"id":1}`), nil
	}

	_, err := Call(context.Background(), echoMethod, nil, roundtrip)
	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if rpcErr.Code != CodeInvalidParams {
		t.Errorf("Code = %d, want %d", rpcErr.Code, CodeInvalidParams)
	}
}

func TestCall_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	roundtrip := func(ctx context.Context, req []byte) ([]byte, error) {
		return nil, boom
	}

	_, err := Call(context.Background(), echoMethod, nil, roundtrip)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestCall_MalformedResponse(t *testing.T) {
	roundtrip := func(ctx context.Context, req []byte) ([]byte, error) {
		return []byte(`not json`), nil
	}

	if _, err := Call(context.Background(), echoMethod, nil, roundtrip); err == nil {
		t.Fatal("expected error for a malformed response")
	}
}

func TestCall_DecodeFailure(t *testing.T) {
	roundtrip := func(ctx context.Context, req []byte) ([]byte, error) {
		return []byte(`{"jsonrpc":"2.0","result":"not a number","id":1}`), nil
	}

	if _, err := Call(context.Background(), echoMethod, nil, roundtrip); err == nil {
		t.Fatal("expected decode error for a mistyped result")
	}
}
