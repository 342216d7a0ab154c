package envelope

import "github.com/opnet-network/indexer/binary"

// DeploymentMatcher is the opcode/data shape of a Deployment witness
// script: three ALTSTACK pushes of the
// header/miner-key/preimage items already consumed off the witness stack,
// a HASH256 preimage check, two signature checks, a second HASH256 region,
// then the IF-branch carrying magic/features/calldata/bytecode.
var DeploymentMatcher = Matcher{
	{Kind: ExpectOp, Op: binary.OpToAltStack},
	{Kind: ExpectOp, Op: binary.OpToAltStack},
	{Kind: ExpectOp, Op: binary.OpToAltStack},
	{Kind: ExpectOp, Op: binary.OpDup},
	{Kind: ExpectOp, Op: binary.OpHash256},
	{Kind: ExpectOp, Op: binary.OpEqualVerify},
	{Kind: ExpectOp, Op: binary.OpCheckSigVerify},
	{Kind: ExpectOp, Op: binary.OpCheckSigVerify},
	{Kind: ExpectOp, Op: binary.OpHash256},
	{Kind: ExpectOp, Op: binary.OpEqualVerify},
	{Kind: ExpectOp, Op: binary.OpDepth},
	{Kind: ExpectOp, Op: binary.Op1},
	{Kind: ExpectOp, Op: binary.OpNumEqual},
	{Kind: ExpectOp, Op: binary.OpIf},
	{Kind: Capture, Len: 2, Name: "magic"},
	{Kind: CaptureRest, Name: "features"},
	{Kind: ExpectOp, Op: binary.Op0},
	{Kind: CaptureRest, Name: "calldata"},
	{Kind: ExpectOp, Op: binary.Op1Negate},
	{Kind: CaptureRest, Name: "bytecode"},
	{Kind: ExpectOp, Op: binary.OpElse},
	{Kind: ExpectOp, Op: binary.Op1},
	{Kind: ExpectOp, Op: binary.OpEndIf},
}

// InteractionMatcher is the Interaction shape: identical save the second
// hash region (HASH160 instead of HASH256) and a target contract address
// capture in place of bytecode.
var InteractionMatcher = Matcher{
	{Kind: ExpectOp, Op: binary.OpToAltStack},
	{Kind: ExpectOp, Op: binary.OpToAltStack},
	{Kind: ExpectOp, Op: binary.OpToAltStack},
	{Kind: ExpectOp, Op: binary.OpDup},
	{Kind: ExpectOp, Op: binary.OpHash256},
	{Kind: ExpectOp, Op: binary.OpEqualVerify},
	{Kind: ExpectOp, Op: binary.OpCheckSigVerify},
	{Kind: ExpectOp, Op: binary.OpCheckSigVerify},
	{Kind: ExpectOp, Op: binary.OpHash160},
	{Kind: ExpectOp, Op: binary.OpEqualVerify},
	{Kind: ExpectOp, Op: binary.OpDepth},
	{Kind: ExpectOp, Op: binary.Op1},
	{Kind: ExpectOp, Op: binary.OpNumEqual},
	{Kind: ExpectOp, Op: binary.OpIf},
	{Kind: Capture, Len: 2, Name: "magic"},
	{Kind: CaptureRest, Name: "features"},
	{Kind: ExpectOp, Op: binary.Op0},
	{Kind: CaptureRest, Name: "calldata"},
	{Kind: ExpectOp, Op: binary.Op1Negate},
	{Kind: CaptureRest, Name: "contract_address"},
	{Kind: ExpectOp, Op: binary.OpElse},
	{Kind: ExpectOp, Op: binary.Op1},
	{Kind: ExpectOp, Op: binary.OpEndIf},
}

// Magic is the 2-byte OP_NET sentinel.
var Magic = [2]byte{'o', 'p'}

// opcodeChecksum is the concatenated bare-opcode sequence of a Matcher,
// used to classify a decoded script by shape before attempting a full
// positional match.
func (m Matcher) opcodeChecksum() []byte {
	out := make([]byte, 0, len(m))
	for _, step := range m {
		if step.Kind == ExpectOp {
			out = append(out, step.Op)
		}
	}
	return out
}
