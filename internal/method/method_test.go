package method

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMethod_EncodeDecode(t *testing.T) {
	m := New[[]string, int]("test_count")

	if m.Name() != "test_count" {
		t.Errorf("Name() = %s", m.Name())
	}

	params, err := m.EncodeParams([]string{"a", "b"})
	if err != nil {
		t.Fatalf("EncodeParams: %v", err)
	}
	if string(params) != `["a","b"]` {
		t.Errorf("params = %s", params)
	}

	result, err := m.DecodeResult(json.RawMessage(`2`))
	if err != nil {
		t.Fatalf("DecodeResult: %v", err)
	}
	if result != 2 {
		t.Errorf("result = %d, want 2", result)
	}
}

func TestMethod_DecodeErrorNamesMethod(t *testing.T) {
	m := New[[]string, int]("test_count")
	_, err := m.DecodeResult(json.RawMessage(`"nope"`))
	if err == nil || !strings.Contains(err.Error(), "test_count") {
		t.Fatalf("err = %v, want the method name in the message", err)
	}
}

func TestBound_ErasesAndRecoversTypes(t *testing.T) {
	m := New[[]int, string]("test_name")
	b := Bind(m, []int{7})

	if b.Name() != "test_name" {
		t.Errorf("Name() = %s", b.Name())
	}

	params, err := b.EncodeParams()
	if err != nil {
		t.Fatalf("EncodeParams: %v", err)
	}
	if string(params) != `[7]` {
		t.Errorf("params = %s", params)
	}

	value, err := b.DecodeResult(json.RawMessage(`"seven"`))
	if err != nil {
		t.Fatalf("DecodeResult: %v", err)
	}
	got, err := As[string](value)
	if err != nil {
		t.Fatalf("As: %v", err)
	}
	if got != "seven" {
		t.Errorf("got = %s", got)
	}
}

func TestAs_TypeMismatch(t *testing.T) {
	if _, err := As[int]("not an int"); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestNewWithCodecs(t *testing.T) {
	upper := Codec[string]{
		Encode: func(s string) (json.RawMessage, error) {
			return json.Marshal(strings.ToUpper(s))
		},
		Decode: func(data json.RawMessage) (string, error) {
			var s string
			err := json.Unmarshal(data, &s)
			return strings.ToLower(s), err
		},
	}
	m := NewWithCodecs("test_custom", upper, upper)

	params, err := m.EncodeParams("loud")
	if err != nil {
		t.Fatalf("EncodeParams: %v", err)
	}
	if string(params) != `"LOUD"` {
		t.Errorf("params = %s", params)
	}

	result, err := m.DecodeResult(json.RawMessage(`"QUIET"`))
	if err != nil {
		t.Fatalf("DecodeResult: %v", err)
	}
	if result != "quiet" {
		t.Errorf("result = %s", result)
	}
}
