package taproot

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/types"
)

// RewardChallengeScript builds the time-locked reward-claim script: the
// miner's legacy compressed key may only spend the reward UTXO after
// timelock, via OP_CHECKLOCKTIMEVERIFY + OP_CHECKSIG.
func RewardChallengeScript(minerKey types.CompressedPubKey33, timelock int64) ([]byte, error) {
	builder := txscript.NewScriptBuilder()
	builder.AddInt64(timelock)
	builder.AddOp(txscript.OP_CHECKLOCKTIMEVERIFY)
	builder.AddOp(txscript.OP_DROP)
	builder.AddData(minerKey.Bytes())
	builder.AddOp(txscript.OP_CHECKSIG)
	return builder.Script()
}

// RewardChallengeAddress derives the P2WSH address that a reward output
// must pay to, given the miner's legacy public key and the consensus
// timelock active at this height.
func RewardChallengeAddress(minerKey types.CompressedPubKey33, timelock int64, net *chaincfg.Params) (string, error) {
	script, err := RewardChallengeScript(minerKey, timelock)
	if err != nil {
		return "", errs.Wrap(errs.KindValidation, "cannot build reward challenge script", err)
	}
	scriptHash := sha256.Sum256(script)
	addr, err := btcutil.NewAddressWitnessScriptHash(scriptHash[:], net)
	if err != nil {
		return "", errs.Wrap(errs.KindValidation, "cannot derive reward challenge address", err)
	}
	return addr.EncodeAddress(), nil
}
