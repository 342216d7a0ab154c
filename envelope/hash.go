package envelope

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/taproot"
	"github.com/opnet-network/indexer/types"
)

func doubleSHA256(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

func wrapValidation(reason string) error {
	return errs.Wrap(errs.KindValidation, reason, nil)
}

// rewardAmount checks outputs[1] (if present) against the time-locked
// reward challenge address derived from the miner's legacy key, returning
// its value as the recorded reward, or 0 if absent/mismatched. rewardTimelock
// is the active consensus timelock (in blocks) a reward UTXO must be locked
// for, taken from the caller's consensus.View rather than hardcoded here.
func rewardAmount(net *chaincfg.Params, minerKey types.CompressedPubKey33, outputs []types.Output, rewardTimelock int64) uint64 {
	if len(outputs) < 2 {
		return 0
	}
	challengeAddr, err := taproot.RewardChallengeAddress(minerKey, rewardTimelock, net)
	if err != nil {
		return 0
	}
	if outputs[1].Address != challengeAddr {
		return 0
	}
	if outputs[1].Value < 0 {
		return 0
	}
	return uint64(outputs[1].Value)
}
