package envelope

import (
	"bytes"

	"github.com/opnet-network/indexer/binary"
	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/types"
)

var (
	deploymentChecksum  = DeploymentMatcher.opcodeChecksum()
	interactionChecksum = InteractionMatcher.opcodeChecksum()
)

// Classify picks the shape whose opcode-only checksum matches the decoded
// script against a known table, then runs the full positional match.
func Classify(decoded []binary.Item) (types.TxType, Matcher, Result, error) {
	bare := make([]binary.Item, 0, len(decoded))
	for _, it := range decoded {
		if !it.IsData() {
			bare = append(bare, it)
		}
	}
	checksum := binary.OpcodeChecksum(bare)
	switch {
	case bytes.Equal(checksum, deploymentChecksum):
		res, err := DeploymentMatcher.Match(decoded)
		if err != nil {
			return types.Generic, nil, nil, err
		}
		return types.Deployment, DeploymentMatcher, res, nil
	case bytes.Equal(checksum, interactionChecksum):
		res, err := InteractionMatcher.Match(decoded)
		if err != nil {
			return types.Generic, nil, nil, err
		}
		return types.Interaction, InteractionMatcher, res, nil
	default:
		return types.Generic, nil, nil, errs.Wrap(errs.KindParse, "no known envelope shape matched", nil)
	}
}

// CheckMagic verifies the captured magic field equals the OP_NET sentinel.
func CheckMagic(res Result) error {
	magic, ok := res["magic"]
	if !ok || len(magic) != 2 || magic[0] != Magic[0] || magic[1] != Magic[1] {
		return errs.Wrap(errs.KindParse, "missing or invalid magic", nil)
	}
	return nil
}
