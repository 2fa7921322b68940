package eth

import (
	"ethrpc/internal/method"
)

// Method descriptors for the supported catalogue. Each descriptor is a
// static binding of a wire method name to its parameter and result shapes;
// binding one to a concrete parameter value yields a call that any engine
// (single, batch or buffered) can carry.
var (
	Web3ClientVersion = method.New[Empty, string]("web3_clientVersion")
	NetVersion        = method.New[Empty, string]("net_version")

	ChainID     = method.New[Empty, Quantity]("eth_chainId")
	BlockNumber = method.New[Empty, Quantity]("eth_blockNumber")
	GasPrice    = method.New[Empty, Quantity]("eth_gasPrice")

	GetBalance = method.New[AddressAtBlock, Quantity]("eth_getBalance")
	GetCode    = method.New[AddressAtBlock, Bytes]("eth_getCode")
	Call       = method.New[CallAtBlock, Bytes]("eth_call")

	// Block lookups return nil when the node does not know the block.
	GetBlockByNumber = method.New[BlockWithTxFlag, *Block]("eth_getBlockByNumber")
	GetBlockByHash   = method.New[HashWithTxFlag, *Block]("eth_getBlockByHash")

	GetTransactionByHash  = method.New[HashParam, *Transaction]("eth_getTransactionByHash")
	GetTransactionReceipt = method.New[HashParam, *Receipt]("eth_getTransactionReceipt")

	GetLogs = method.New[FilterParam, []Log]("eth_getLogs")
)
