// Package blockparam inspects the block parameter of Ethereum JSON-RPC
// calls without decoding the full parameter payload. It answers two
// questions about a call: does it pin a concrete block, and which one.
package blockparam

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DynamicTags are the block tags whose meaning moves with the chain head.
// A call using one of them never refers to a stable block.
var DynamicTags = map[string]bool{
	"latest":    true,
	"pending":   true,
	"earliest":  true,
	"safe":      true,
	"finalized": true,
}

// paramIndex maps a method to the position of its block parameter.
var paramIndex = map[string]int{
	"eth_getBlockByNumber":                    0,
	"eth_getBlockTransactionCountByNumber":    0,
	"eth_getTransactionByBlockNumberAndIndex": 0,
	"eth_getBlockReceipts":                    0,
	"eth_getBalance":                          1,
	"eth_getCode":                             1,
	"eth_getTransactionCount":                 1,
	"eth_call":                                1,
	"eth_getStorageAt":                        2,
	"eth_getProof":                            2,
	"debug_traceBlockByNumber":                0,
	"debug_traceCall":                         1,
	"trace_call":                              1,
	"trace_callMany":                          1,
	"trace_replayBlockTransactions":           0,
}

// rangeMethods take a filter object with fromBlock/toBlock instead of a
// positional block parameter.
var rangeMethods = map[string]bool{
	"eth_getLogs":  true,
	"trace_filter": true,
}

// ParamIndex returns the position of the method's block parameter, or -1
// when the method takes none.
func ParamIndex(method string) int {
	if idx, ok := paramIndex[method]; ok {
		return idx
	}
	return -1
}

// IsDynamic reports whether the call's block parameter refers to a moving
// target. Missing or unparseable parameters count as dynamic, since such
// calls default to latest on the node side.
func IsDynamic(method string, params json.RawMessage) bool {
	if rangeMethods[method] {
		_, pinned := rangeNumber(params)
		return !pinned
	}

	idx := ParamIndex(method)
	if idx < 0 {
		return false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(params, &elems); err != nil {
		return true
	}
	if idx >= len(elems) {
		return true
	}
	return dynamicElem(elems[idx])
}

// Number returns the concrete block number the call refers to, when there is
// one. For range methods this is max(fromBlock, toBlock). The second return
// value is false when the call uses a dynamic tag, takes no block parameter,
// or cannot be parsed.
func Number(method string, params json.RawMessage) (uint64, bool) {
	if len(params) == 0 {
		return 0, false
	}
	if rangeMethods[method] {
		return rangeNumber(params)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(params, &elems); err != nil {
		return 0, false
	}
	idx := ParamIndex(method)
	if idx < 0 || idx >= len(elems) {
		return 0, false
	}
	return elemNumber(elems[idx])
}

// dynamicElem classifies a single block parameter element. The element is
// either a string (tag or hex number) or an object carrying a blockNumber
// field, per EIP-1898.
func dynamicElem(elem json.RawMessage) bool {
	s, ok := elemString(elem)
	if !ok {
		return true
	}
	return DynamicTags[strings.ToLower(s)]
}

func elemNumber(elem json.RawMessage) (uint64, bool) {
	s, ok := elemString(elem)
	if !ok || DynamicTags[strings.ToLower(s)] {
		return 0, false
	}
	return parseHex(s)
}

// elemString extracts the block reference string out of an element, looking
// inside EIP-1898 objects when needed.
func elemString(elem json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(elem, &s); err == nil {
		return s, true
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(elem, &obj); err != nil {
		return "", false
	}
	ref, ok := obj["blockNumber"]
	if !ok {
		return "", false
	}
	if err := json.Unmarshal(ref, &s); err != nil {
		return "", false
	}
	return s, true
}

// rangeNumber resolves a filter-style call. Both bounds must be concrete
// numbers for the call to count as pinned; an absent bound defaults to
// latest on the node side.
func rangeNumber(params json.RawMessage) (uint64, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(params, &elems); err != nil || len(elems) == 0 {
		return 0, false
	}
	var filter map[string]json.RawMessage
	if err := json.Unmarshal(elems[0], &filter); err != nil {
		return 0, false
	}

	bound := func(key string) (uint64, bool) {
		raw, ok := filter[key]
		if !ok {
			return 0, false
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		if DynamicTags[strings.ToLower(s)] {
			return 0, false
		}
		return parseHex(s)
	}

	from, fromOK := bound("fromBlock")
	to, toOK := bound("toBlock")
	if !fromOK || !toOK {
		return 0, false
	}
	if to > from {
		return to, true
	}
	return from, true
}

func parseHex(s string) (uint64, bool) {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
