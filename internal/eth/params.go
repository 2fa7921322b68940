package eth

import (
	"encoding/json"
	"fmt"
)

// Ethereum methods take positional parameters, so every parameter shape in
// this package marshals to a JSON array.

// Empty is the parameter shape of methods that take no arguments. It
// encodes as an empty array rather than being omitted.
type Empty struct{}

// MarshalJSON implements json.Marshaler
func (Empty) MarshalJSON() ([]byte, error) {
	return []byte("[]"), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (*Empty) UnmarshalJSON([]byte) error {
	return nil
}

func marshalTuple(elems ...any) ([]byte, error) {
	return json.Marshal(elems)
}

func unmarshalTuple(data []byte, elems ...any) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != len(elems) {
		return fmt.Errorf("expected %d parameters, got %d", len(elems), len(raw))
	}
	for i, elem := range raw {
		if err := json.Unmarshal(elem, elems[i]); err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}
	}
	return nil
}

// AddressAtBlock is the [address, block] parameter pair.
type AddressAtBlock struct {
	Address Address
	Block   BlockSpec
}

func (p AddressAtBlock) MarshalJSON() ([]byte, error) {
	return marshalTuple(p.Address, p.Block)
}

func (p *AddressAtBlock) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &p.Address, &p.Block)
}

// CallAtBlock is the [callObject, block] parameter pair.
type CallAtBlock struct {
	Call  CallObject
	Block BlockSpec
}

func (p CallAtBlock) MarshalJSON() ([]byte, error) {
	return marshalTuple(p.Call, p.Block)
}

func (p *CallAtBlock) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &p.Call, &p.Block)
}

// BlockWithTxFlag is the [block, fullTransactions] parameter pair.
type BlockWithTxFlag struct {
	Block            BlockSpec
	FullTransactions bool
}

func (p BlockWithTxFlag) MarshalJSON() ([]byte, error) {
	return marshalTuple(p.Block, p.FullTransactions)
}

func (p *BlockWithTxFlag) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &p.Block, &p.FullTransactions)
}

// HashWithTxFlag is the [blockHash, fullTransactions] parameter pair.
type HashWithTxFlag struct {
	Hash             Hash
	FullTransactions bool
}

func (p HashWithTxFlag) MarshalJSON() ([]byte, error) {
	return marshalTuple(p.Hash, p.FullTransactions)
}

func (p *HashWithTxFlag) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &p.Hash, &p.FullTransactions)
}

// HashParam is a single-hash parameter list.
type HashParam struct {
	Hash Hash
}

func (p HashParam) MarshalJSON() ([]byte, error) {
	return marshalTuple(p.Hash)
}

func (p *HashParam) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &p.Hash)
}

// FilterParam is a single-filter parameter list.
type FilterParam struct {
	Filter LogFilter
}

func (p FilterParam) MarshalJSON() ([]byte, error) {
	return marshalTuple(p.Filter)
}

func (p *FilterParam) UnmarshalJSON(data []byte) error {
	return unmarshalTuple(data, &p.Filter)
}
