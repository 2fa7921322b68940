package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"ethrpc/internal/blockparam"
)

// Cacheability describes when a method's results may be reused.
type Cacheability int

const (
	// NotCacheable results must always come from the node.
	NotCacheable Cacheability = iota
	// Immutable results never change once produced (hash-addressed data).
	Immutable
	// PinnedBlock results are reusable only when the call names a concrete
	// block number rather than a moving tag.
	PinnedBlock
)

// methodRules maps methods to their cacheability.
var methodRules = map[string]Cacheability{
	"eth_getBlockByHash":                    Immutable,
	"eth_getTransactionByHash":              Immutable,
	"eth_getTransactionReceipt":             Immutable,
	"eth_getBlockTransactionCountByHash":    Immutable,
	"eth_getTransactionByBlockHashAndIndex": Immutable,
	"eth_chainId":                           Immutable,
	"net_version":                           Immutable,
	"web3_clientVersion":                    Immutable,

	"eth_getBlockByNumber":                    PinnedBlock,
	"eth_getBalance":                          PinnedBlock,
	"eth_getCode":                             PinnedBlock,
	"eth_getStorageAt":                        PinnedBlock,
	"eth_getTransactionCount":                 PinnedBlock,
	"eth_call":                                PinnedBlock,
	"eth_getBlockTransactionCountByNumber":    PinnedBlock,
	"eth_getTransactionByBlockNumberAndIndex": PinnedBlock,
	"eth_getBlockReceipts":                    PinnedBlock,
	"eth_getProof":                            PinnedBlock,
	"eth_getLogs":                             PinnedBlock,
}

// Rules decides, per request, whether the result may be served from or
// written to a Store.
type Rules struct {
	disabled map[string]bool
}

// NewRules creates a rule set with the given methods excluded from caching
// on top of the built-in method table.
func NewRules(disabledMethods []string) *Rules {
	disabled := make(map[string]bool, len(disabledMethods))
	for _, m := range disabledMethods {
		disabled[m] = true
	}
	return &Rules{disabled: disabled}
}

// Cacheable reports whether a call with the given method and params may be
// cached.
func (r *Rules) Cacheable(method string, params json.RawMessage) bool {
	if r.disabled[method] {
		return false
	}

	switch methodRules[method] {
	case Immutable:
		return true
	case PinnedBlock:
		return !blockparam.IsDynamic(method, params)
	default:
		return false
	}
}

// Key derives the cache key for a call. Params are normalized before
// hashing so that key order and hex casing do not fragment the cache.
func (r *Rules) Key(method string, params json.RawMessage) string {
	sum := sha256.Sum256(normalizeParams(params))
	return method + ":" + hex.EncodeToString(sum[:8])
}

func normalizeParams(params json.RawMessage) []byte {
	if len(params) == 0 {
		return []byte("[]")
	}

	var data any
	if err := json.Unmarshal(params, &data); err != nil {
		return params
	}
	normalized, err := json.Marshal(normalizeValue(data))
	if err != nil {
		return params
	}
	return normalized
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(val))
		for _, k := range keys {
			out[k] = normalizeValue(val[k])
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalizeValue(e)
		}
		return out
	case string:
		// Hex addresses and hashes compare case-insensitively.
		return strings.ToLower(val)
	default:
		return val
	}
}
