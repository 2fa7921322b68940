package blockparam

import (
	"encoding/json"
	"testing"
)

func TestIsDynamic(t *testing.T) {
	tests := []struct {
		name   string
		method string
		params string
		want   bool
	}{
		{"latest tag", "eth_getBalance", `["0xabc","latest"]`, true},
		{"pending tag", "eth_getBalance", `["0xabc","pending"]`, true},
		{"concrete number", "eth_getBalance", `["0xabc","0x10"]`, false},
		{"missing block param", "eth_getBalance", `["0xabc"]`, true},
		{"no block param method", "eth_getTransactionByHash", `["0xdead"]`, false},
		{"eip1898 number", "eth_call", `[{"to":"0xabc"},{"blockNumber":"0x5"}]`, false},
		{"eip1898 tag", "eth_call", `[{"to":"0xabc"},{"blockNumber":"latest"}]`, true},
		{"unparseable", "eth_getBalance", `"not an array"`, true},
		{"range pinned", "eth_getLogs", `[{"fromBlock":"0x1","toBlock":"0x2"}]`, false},
		{"range open to", "eth_getLogs", `[{"fromBlock":"0x1","toBlock":"latest"}]`, true},
		{"range missing from", "eth_getLogs", `[{"toBlock":"0x2"}]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDynamic(tt.method, json.RawMessage(tt.params)); got != tt.want {
				t.Errorf("IsDynamic(%s, %s) = %v, want %v", tt.method, tt.params, got, tt.want)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		params     string
		want       uint64
		wantPinned bool
	}{
		{"positional", "eth_getBlockByNumber", `["0x1a",false]`, 26, true},
		{"second position", "eth_getCode", `["0xabc","0xff"]`, 255, true},
		{"tag", "eth_getBlockByNumber", `["latest",false]`, 0, false},
		{"range takes max", "eth_getLogs", `[{"fromBlock":"0x10","toBlock":"0x20"}]`, 32, true},
		{"range reversed", "eth_getLogs", `[{"fromBlock":"0x20","toBlock":"0x10"}]`, 32, true},
		{"no params", "eth_getBlockByNumber", ``, 0, false},
		{"no block param method", "eth_chainId", `[]`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, pinned := Number(tt.method, json.RawMessage(tt.params))
			if got != tt.want || pinned != tt.wantPinned {
				t.Errorf("Number(%s, %s) = (%d, %v), want (%d, %v)",
					tt.method, tt.params, got, pinned, tt.want, tt.wantPinned)
			}
		})
	}
}

func TestParamIndex(t *testing.T) {
	if got := ParamIndex("eth_getStorageAt"); got != 2 {
		t.Errorf("ParamIndex(eth_getStorageAt) = %d, want 2", got)
	}
	if got := ParamIndex("eth_chainId"); got != -1 {
		t.Errorf("ParamIndex(eth_chainId) = %d, want -1", got)
	}
}
