package main

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/opnet-network/indexer/consensus"
	"github.com/opnet-network/indexer/mempool"
	"github.com/opnet-network/indexer/types"
	"github.com/opnet-network/indexer/wsproto"
)

// buildHandlers wires the few WebSocket opcodes this daemon answers
// locally (current height, chain id, broadcasting a raw transaction into
// the mempool). Every other opcode reads through the Mongo-style query
// repository, an external collaborator outside this binary's scope;
// wsproto.Handler dispatches those through the same handlers map once
// that service exists, so opnetd leaves them unregistered rather than
// faking their answers.
func buildHandlers(view *consensus.View, chainID uint32, pool *mempool.Pool) map[wsproto.Opcode]wsproto.HandlerFunc {
	return map[wsproto.Opcode]wsproto.HandlerFunc{
		wsproto.OpGetBlockNumber: func(ctx context.Context, conn *wsproto.Conn, frame wsproto.ClientFrame) ([]byte, error) {
			return wsproto.EncodePayload(view.BlockHeight())
		},
		wsproto.OpGetChainID: func(ctx context.Context, conn *wsproto.Conn, frame wsproto.ClientFrame) ([]byte, error) {
			return wsproto.EncodePayload(chainID)
		},
		wsproto.OpBroadcastTransaction: func(ctx context.Context, conn *wsproto.Conn, frame wsproto.ClientFrame) ([]byte, error) {
			var req broadcastRequest
			if err := wsproto.DecodePayload(frame.Payload, &req); err != nil {
				return nil, err
			}
			txid := types.Hash(chainhash.DoubleHashH(req.Raw))
			result, err := pool.Submit(ctx, req.Raw, req.IsPSBT, txid)
			if err != nil {
				return nil, err
			}
			return wsproto.EncodePayload(result)
		},
	}
}

// broadcastRequest is BROADCAST_TRANSACTION's request payload.
type broadcastRequest struct {
	Raw    []byte
	IsPSBT bool
}
