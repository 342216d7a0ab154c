// Package taproot reconstructs a taproot script-path
// control block and checking that the on-chain output address equals the
// address derived from sender key + bytecode/contract address + salt +
// features, using the genuine secp256k1/schnorr machinery OP_NET's
// taproot addresses require.
package taproot

import (
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/types"
)

// LeafVersion is the tapscript leaf version OP_NET envelopes commit to.
const LeafVersion = txscript.BaseLeafVersion

// ParseControlBlock validates and decodes the raw control-block witness
// element: a 33-byte base (leaf version/parity byte plus internal key)
// followed by zero or more 32-byte merkle path elements. The exact 65-byte
// length of an OP_NET envelope's control block is checked by
// envelope.ParseWitness, not here.
func ParseControlBlock(raw []byte) (*txscript.ControlBlock, error) {
	cb, err := txscript.ParseControlBlock(raw)
	if err != nil {
		return nil, errs.Wrap(errs.KindParse, "invalid control block", err)
	}
	return cb, nil
}

// DerivedAddress reconstructs the taproot output key from (witness script,
// control block) and renders it as a bech32m address on net.
func DerivedAddress(script []byte, cb *txscript.ControlBlock, net *chaincfg.Params) (string, types.XOnlyPubKey32, error) {
	merkleRoot := cb.RootHash(script)
	outputKey := txscript.ComputeTaprootOutputKey(cb.InternalKey, merkleRoot)
	xOnly := schnorr.SerializePubKey(outputKey)

	addr, err := btcutil.NewAddressTaproot(xOnly, net)
	if err != nil {
		return "", types.XOnlyPubKey32{}, errs.Wrap(errs.KindValidation, "cannot derive taproot address", err)
	}
	return addr.EncodeAddress(), types.BytesToXOnly(xOnly), nil
}

// VerifyOutputAddress reconstructs the control-block-derived address and
// compares its encoded string, byte-exact and timing-safe, against the
// on-chain output address string. Returns the tweaked 32-byte sender key
// on success.
func VerifyOutputAddress(script []byte, controlBlockRaw []byte, outputAddress string, net *chaincfg.Params) (types.XOnlyPubKey32, error) {
	cb, err := ParseControlBlock(controlBlockRaw)
	if err != nil {
		return types.XOnlyPubKey32{}, err
	}
	derivedAddr, xOnly, err := DerivedAddress(script, cb, net)
	if err != nil {
		return types.XOnlyPubKey32{}, err
	}
	if !types.ConstantTimeEqualBytes([]byte(derivedAddr), []byte(outputAddress)) {
		return types.XOnlyPubKey32{}, errs.Wrap(errs.KindValidation, "output address mismatch", nil)
	}
	return xOnly, nil
}

