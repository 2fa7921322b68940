package jsonrpc

import (
	"strings"
	"testing"
)

func TestParseResponse_Result(t *testing.T) {
	resp, err := ParseResponse([]byte(`{"jsonrpc":"2.0","result":"0x1","id":7}`))
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if resp.HasError() {
		t.Fatal("HasError() = true for a success response")
	}
	if string(resp.Result) != `"0x1"` {
		t.Errorf("Result = %s", resp.Result)
	}
	if resp.ID == nil || *resp.ID != 7 {
		t.Errorf("ID = %v, want 7", resp.ID)
	}
}

func TestParseResponse_Error(t *testing.T) {
	resp, err := ParseResponse([]byte(`{"jsonrpc":"2.0","error":{"code":-32601,"message":"nope"},"id":3}`))
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if !resp.HasError() {
		t.Fatal("HasError() = false for an error response")
	}
	if resp.Err.Code != CodeMethodNotFound {
		t.Errorf("Code = %d, want %d", resp.Err.Code, CodeMethodNotFound)
	}
	if resp.Result != nil {
		t.Errorf("Result = %s, want nil", resp.Result)
	}
}

// Some nodes return both fields in one envelope, e.g. auto-mining dev nodes
// that report a transaction result alongside a mining warning. The success
// value wins.
func TestParseResponse_ResultAndError(t *testing.T) {
	resp, err := ParseResponse([]byte(`{"jsonrpc":"2.0","result":"0xbeef","error":{"code":-32000,"message":"warning"},"id":1}`))
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if resp.HasError() {
		t.Fatal("HasError() = true, want result to take precedence")
	}
	if string(resp.Result) != `"0xbeef"` {
		t.Errorf("Result = %s", resp.Result)
	}
}

func TestParseResponse_NullResult(t *testing.T) {
	// result:null is a success carrying the JSON null value, e.g. a block
	// lookup for an unknown block.
	resp, err := ParseResponse([]byte(`{"jsonrpc":"2.0","result":null,"id":1}`))
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if resp.HasError() {
		t.Fatal("HasError() = true for result:null")
	}
	if string(resp.Result) != "null" {
		t.Errorf("Result = %s, want null", resp.Result)
	}
}

func TestParseResponse_NeitherField(t *testing.T) {
	_, err := ParseResponse([]byte(`{"jsonrpc":"2.0","id":1}`))
	if err == nil {
		t.Fatal("expected error for a response with neither result nor error")
	}
}

func TestParseResponse_WrongVersion(t *testing.T) {
	_, err := ParseResponse([]byte(`{"jsonrpc":"1.0","result":"0x1","id":1}`))
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("err = %v, want version error", err)
	}
}

func TestParseResponse_MissingID(t *testing.T) {
	// A peer that cannot attribute a failure to a call omits the id.
	resp, err := ParseResponse([]byte(`{"jsonrpc":"2.0","error":{"code":-32700,"message":"parse error"}}`))
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if resp.ID != nil {
		t.Errorf("ID = %v, want nil", resp.ID)
	}
}

func TestResponse_MarshalRoundTrip(t *testing.T) {
	id := ID(42)
	resp := &Response{Result: []byte(`"0x2a"`), ID: &id}

	body, err := resp.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	parsed, err := ParseResponse(body)
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if string(parsed.Result) != `"0x2a"` || parsed.ID == nil || *parsed.ID != 42 {
		t.Errorf("round trip mismatch: %+v", parsed)
	}
}
