package envelope

import (
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/opnet-network/indexer/binary"
	"github.com/opnet-network/indexer/consensus"
	"github.com/opnet-network/indexer/taproot"
	"github.com/opnet-network/indexer/types"
)

// Extract runs the full structural/magic/checksum/sender-key/salt/address/
// fee/reward/size/input-count pipeline over tx's raw inputs. On any
// failure the transaction is demoted to Generic with the
// failure recorded on ClassificationError, never surfaced to the caller:
// Extract has no return value.
func Extract(view *consensus.View, net *chaincfg.Params, tx *types.Transaction) {
	if err := extract(view, net, tx); err != nil {
		tx.Type = types.Generic
		tx.ClassificationError = err
	}
}

func extract(view *consensus.View, net *chaincfg.Params, tx *types.Transaction) error {
	// Check 10 (partial): input-count limits and coinbase rejection.
	if len(tx.Inputs) > view.MaximumInputs || len(tx.Outputs) > view.MaximumOutputs {
		return demote("too many inputs or outputs")
	}
	if len(tx.Inputs) == 0 {
		return demote("no inputs")
	}
	if tx.Inputs[0].IsCoinbase() {
		return demote("coinbase cannot be a protocol transaction")
	}

	// Check 1: structural witness shape.
	w, decoded, err := ParseWitness(tx.Inputs[0].Witness)
	if err != nil {
		return err
	}

	// Classification + check 3 (opcode checksum).
	txType, matcher, res, err := Classify(decoded)
	if err != nil {
		return err
	}

	// Check 2: magic.
	if err := CheckMagic(res); err != nil {
		return err
	}

	features, err := ParseFeatures(res["features"])
	if err != nil {
		return err
	}

	// Check 6: rebuild the control-block tapleaf from the envelope's own
	// captured fields (not the raw observed script) and recompute the
	// output address.
	rebuilt, err := matcher.Build(res)
	if err != nil {
		return err
	}
	if len(tx.Outputs) == 0 {
		return demote("no outputs")
	}
	xOnly, err := taproot.VerifyOutputAddress(rebuilt, w.ControlBlock[:], tx.Outputs[0].Address, net)
	if err != nil {
		return err
	}

	// Check 4: sender public-key integrity, HASH256(senderXOnly) == embedded hash, timing-safe.
	senderHash := types.BytesToHash(doubleSHA256(xOnly[:]))
	if !senderHash.Equal(features.SenderKeyHash) {
		return demote("sender key hash mismatch")
	}

	// Check 5: salt, HASH256(salt) == embedded hash is folded into the
	// rebuilt-script address check above since salt is part of the
	// rebuilt tapleaf; length bound already enforced in ParseFeatures.

	// Check 7: fee accounting.
	burnedFee := tx.Outputs[0].Value
	if burnedFee > view.MaxBurnedFeeSat {
		return demote("burned fee exceeds cap")
	}
	reward := rewardAmount(net, features.MinerKey, tx.Outputs, view.RewardTimelock)
	totalFeeFund := burnedFee + int64(reward)
	if features.PriorityFeeSat > totalFeeFund {
		return demote("priority fee exceeds total fee fund")
	}

	// Check 9: size caps, bounded decompression, and deployment version.
	compressedBytecode := res["bytecode"]
	compressedCalldata := res["calldata"]
	if len(compressedBytecode) > view.MaxContractSizeCompressed {
		return demote("bytecode exceeds compressed size cap")
	}
	if len(compressedCalldata) > view.MaxCalldataSizeCompressed {
		return demote("calldata exceeds compressed size cap")
	}
	decompressedBytecode, err := binary.DecompressBounded(compressedBytecode, view.MaxDecompressedSize)
	if err != nil {
		return err
	}
	decompressedCalldata, err := binary.DecompressBounded(compressedCalldata, view.MaxDecompressedSize)
	if err != nil {
		return err
	}
	if txType == types.Deployment {
		if err := checkDeploymentVersion(decompressedBytecode, view.CurrentDeploymentVersion); err != nil {
			return err
		}
	}

	tx.Type = txType
	tx.From = xOnly
	pk, _ := schnorr.ParsePubKey(xOnly[:])
	if pk != nil {
		tx.FromLegacy = types.BytesToCompressed(pk.SerializeCompressed())
	}
	tx.Preimage = w.Preimage
	tx.Miner = features.MinerKey
	tx.PriorityFeeSat = features.PriorityFeeSat
	tx.BurnedFee = burnedFee
	tx.GasSatFee = totalFeeFund - features.PriorityFeeSat
	tx.Reward = reward
	tx.Calldata = decompressedCalldata

	if txType == types.Deployment {
		tx.Bytecode = decompressedBytecode
	} else {
		tx.ContractAddress = types.ContractAddress(res["contract_address"])
	}
	return nil
}

func demote(reason string) error {
	return wrapValidation(reason)
}

// checkDeploymentVersion enforces that decompressed bytecode's leading byte
// (the deployment format version) never exceeds the version this indexer
// currently understands.
func checkDeploymentVersion(decompressedBytecode []byte, currentVersion uint8) error {
	if len(decompressedBytecode) == 0 {
		return demote("empty deployment bytecode")
	}
	if decompressedBytecode[0] > currentVersion {
		return demote("deployment version exceeds current version")
	}
	return nil
}
