// Package wsproto implements binary opcode framing over a real
// WebSocket transport, a handshake-first connection lifecycle, per-
// connection rate limiting and subscription caps, and block/epoch/mempool
// notification fan-out, with a real gorilla/websocket upgrade and
// read/write loop backing each connection.
package wsproto

// Opcode is the first byte of every client message and every server
// response, drawn from a closed set fixed at protocol version 1.
type Opcode byte

const (
	OpPing Opcode = iota
	OpHandshake
	OpGetBlockNumber
	OpGetBlockByNumber
	OpGetBlockByHash
	OpGetBlockByChecksum
	OpGetBlockWitness
	OpGetGas
	OpGetTransactionByHash
	OpGetTransactionReceipt
	OpBroadcastTransaction
	OpGetPreimage
	OpGetBalance
	OpGetUTXOs
	OpGetPublicKeyInfo
	OpGetChainID
	OpGetReorg
	OpGetCode
	OpGetStorageAt
	OpCall
	OpGetLatestEpoch
	OpGetEpochByNumber
	OpGetEpochByHash
	OpGetEpochTemplate
	OpSubmitEpoch
	OpSubscribeBlocks
	OpSubscribeEpochs
	OpUnsubscribe
)

func (o Opcode) String() string {
	switch o {
	case OpPing:
		return "PING"
	case OpHandshake:
		return "HANDSHAKE"
	case OpGetBlockNumber:
		return "GET_BLOCK_NUMBER"
	case OpGetBlockByNumber:
		return "GET_BLOCK_BY_NUMBER"
	case OpGetBlockByHash:
		return "GET_BLOCK_BY_HASH"
	case OpGetBlockByChecksum:
		return "GET_BLOCK_BY_CHECKSUM"
	case OpGetBlockWitness:
		return "GET_BLOCK_WITNESS"
	case OpGetGas:
		return "GET_GAS"
	case OpGetTransactionByHash:
		return "GET_TRANSACTION_BY_HASH"
	case OpGetTransactionReceipt:
		return "GET_TRANSACTION_RECEIPT"
	case OpBroadcastTransaction:
		return "BROADCAST_TRANSACTION"
	case OpGetPreimage:
		return "GET_PREIMAGE"
	case OpGetBalance:
		return "GET_BALANCE"
	case OpGetUTXOs:
		return "GET_UTXOS"
	case OpGetPublicKeyInfo:
		return "GET_PUBLIC_KEY_INFO"
	case OpGetChainID:
		return "GET_CHAIN_ID"
	case OpGetReorg:
		return "GET_REORG"
	case OpGetCode:
		return "GET_CODE"
	case OpGetStorageAt:
		return "GET_STORAGE_AT"
	case OpCall:
		return "CALL"
	case OpGetLatestEpoch:
		return "GET_LATEST_EPOCH"
	case OpGetEpochByNumber:
		return "GET_EPOCH_BY_NUMBER"
	case OpGetEpochByHash:
		return "GET_EPOCH_BY_HASH"
	case OpGetEpochTemplate:
		return "GET_EPOCH_TEMPLATE"
	case OpSubmitEpoch:
		return "SUBMIT_EPOCH"
	case OpSubscribeBlocks:
		return "SUBSCRIBE_BLOCKS"
	case OpSubscribeEpochs:
		return "SUBSCRIBE_EPOCHS"
	case OpUnsubscribe:
		return "UNSUBSCRIBE"
	default:
		return "UNKNOWN"
	}
}

// requestIDFree reports whether opcode never carries a 4-byte request id
// prefix on the client frame: ping and handshake share plain framing,
// every other payload is request-id prefixed.
func requestIDFree(o Opcode) bool { return o == OpPing || o == OpHandshake }

// SubscriptionType is the per-subscription filter kind: blocks, epochs,
// mempool. Conn.Subscribe, UNSUBSCRIBE and Notify accept SubMempool, but no
// subscribe opcode maps to it: SUBSCRIBE_BLOCKS and SUBSCRIBE_EPOCHS are
// the only subscribe requests, so a client cannot subscribe to mempool.
type SubscriptionType byte

const (
	SubBlocks SubscriptionType = iota
	SubEpochs
	SubMempool
)

// CloseCode is one of the protocol's fatal/administrative close codes.
type CloseCode uint16

const (
	CloseShutdown         CloseCode = 1001
	CloseProtocolViolation CloseCode = 1002
	CloseFatalAppError    CloseCode = 1008
	CloseUnknownClient    CloseCode = 1011
	CloseCapacity         CloseCode = 1013
)
