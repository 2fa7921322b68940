// Package eth provides typed method descriptors and wire types for the
// Ethereum JSON-RPC namespace.
package eth

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Quantity is a uint64 carried on the wire as a 0x-prefixed hex string
// without leading zeros, per the Ethereum JSON-RPC quantity encoding.
type Quantity uint64

// MarshalJSON implements json.Marshaler
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + strconv.FormatUint(uint64(q), 16))
}

// UnmarshalJSON implements json.Unmarshaler
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("quantity %q is missing the 0x prefix", s)
	}
	n, err := strconv.ParseUint(s[2:], 16, 64)
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	*q = Quantity(n)
	return nil
}

// Bytes is a byte string carried on the wire as 0x-prefixed hex. Empty
// data encodes as "0x".
type Bytes []byte

// MarshalJSON implements json.Marshaler
func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + hex.EncodeToString(b))
}

// UnmarshalJSON implements json.Unmarshaler
func (b *Bytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("data %q is missing the 0x prefix", s)
	}
	decoded, err := hex.DecodeString(s[2:])
	if err != nil {
		return fmt.Errorf("invalid hex data %q: %w", s, err)
	}
	*b = decoded
	return nil
}

// Address is a 0x-prefixed account address.
type Address string

// Hash is a 0x-prefixed 32-byte hash.
type Hash string

// BlockSpec selects a block: either a concrete number or a named tag.
type BlockSpec struct {
	number uint64
	tag    string
}

// BlockNumberSpec pins a concrete block number.
func BlockNumberSpec(n uint64) BlockSpec {
	return BlockSpec{number: n}
}

// Named block tags
var (
	Latest    = BlockSpec{tag: "latest"}
	Pending   = BlockSpec{tag: "pending"}
	Earliest  = BlockSpec{tag: "earliest"}
	Safe      = BlockSpec{tag: "safe"}
	Finalized = BlockSpec{tag: "finalized"}
)

// MarshalJSON implements json.Marshaler
func (s BlockSpec) MarshalJSON() ([]byte, error) {
	if s.tag != "" {
		return json.Marshal(s.tag)
	}
	return json.Marshal("0x" + strconv.FormatUint(s.number, 16))
}

// UnmarshalJSON implements json.Unmarshaler
func (s *BlockSpec) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if strings.HasPrefix(str, "0x") {
		n, err := strconv.ParseUint(str[2:], 16, 64)
		if err != nil {
			return fmt.Errorf("invalid block number %q: %w", str, err)
		}
		*s = BlockSpec{number: n}
		return nil
	}
	*s = BlockSpec{tag: str}
	return nil
}

// String returns the wire form of the selector.
func (s BlockSpec) String() string {
	if s.tag != "" {
		return s.tag
	}
	return "0x" + strconv.FormatUint(s.number, 16)
}

// Block mirrors the node's block object. Transactions are left raw since
// their shape depends on the fullTransactions request flag.
type Block struct {
	Number           Quantity          `json:"number"`
	Hash             Hash              `json:"hash"`
	ParentHash       Hash              `json:"parentHash"`
	Timestamp        Quantity          `json:"timestamp"`
	Miner            Address           `json:"miner"`
	GasLimit         Quantity          `json:"gasLimit"`
	GasUsed          Quantity          `json:"gasUsed"`
	BaseFeePerGas    *Quantity         `json:"baseFeePerGas,omitempty"`
	ExtraData        Bytes             `json:"extraData"`
	Transactions     []json.RawMessage `json:"transactions"`
	TransactionsRoot Hash              `json:"transactionsRoot"`
	StateRoot        Hash              `json:"stateRoot"`
	ReceiptsRoot     Hash              `json:"receiptsRoot"`
}

// Transaction mirrors the node's transaction object.
type Transaction struct {
	Hash             Hash      `json:"hash"`
	BlockHash        *Hash     `json:"blockHash"`
	BlockNumber      *Quantity `json:"blockNumber"`
	From             Address   `json:"from"`
	To               *Address  `json:"to"`
	Value            Quantity  `json:"value"`
	Gas              Quantity  `json:"gas"`
	GasPrice         *Quantity `json:"gasPrice,omitempty"`
	Input            Bytes     `json:"input"`
	Nonce            Quantity  `json:"nonce"`
	TransactionIndex *Quantity `json:"transactionIndex"`
}

// Receipt mirrors the node's transaction receipt object.
type Receipt struct {
	TransactionHash   Hash      `json:"transactionHash"`
	TransactionIndex  Quantity  `json:"transactionIndex"`
	BlockHash         Hash      `json:"blockHash"`
	BlockNumber       Quantity  `json:"blockNumber"`
	From              Address   `json:"from"`
	To                *Address  `json:"to"`
	CumulativeGasUsed Quantity  `json:"cumulativeGasUsed"`
	GasUsed           Quantity  `json:"gasUsed"`
	ContractAddress   *Address  `json:"contractAddress"`
	Logs              []Log     `json:"logs"`
	Status            *Quantity `json:"status,omitempty"`
	EffectiveGasPrice *Quantity `json:"effectiveGasPrice,omitempty"`
}

// Log mirrors the node's log object.
type Log struct {
	Address          Address  `json:"address"`
	Topics           []Hash   `json:"topics"`
	Data             Bytes    `json:"data"`
	BlockNumber      Quantity `json:"blockNumber"`
	BlockHash        Hash     `json:"blockHash"`
	TransactionHash  Hash     `json:"transactionHash"`
	TransactionIndex Quantity `json:"transactionIndex"`
	LogIndex         Quantity `json:"logIndex"`
	Removed          bool     `json:"removed"`
}

// CallObject is the message passed to eth_call.
type CallObject struct {
	From     *Address  `json:"from,omitempty"`
	To       Address   `json:"to"`
	Gas      *Quantity `json:"gas,omitempty"`
	GasPrice *Quantity `json:"gasPrice,omitempty"`
	Value    *Quantity `json:"value,omitempty"`
	Data     Bytes     `json:"data,omitempty"`
}

// LogFilter is the filter object passed to eth_getLogs.
type LogFilter struct {
	FromBlock *BlockSpec `json:"fromBlock,omitempty"`
	ToBlock   *BlockSpec `json:"toBlock,omitempty"`
	Address   []Address  `json:"address,omitempty"`
	Topics    [][]Hash   `json:"topics,omitempty"`
	BlockHash *Hash      `json:"blockHash,omitempty"`
}
