package envelope

import (
	"github.com/opnet-network/indexer/binary"
	"github.com/opnet-network/indexer/errs"
)

// Witness is the structurally-validated shape of a protocol witness stack:
// exactly five items — two signatures, the preimage challenge solution,
// the tapscript itself, and the control block.
type Witness struct {
	Sig1         [64]byte
	Sig2         [64]byte
	Preimage     []byte
	Script       []byte
	ControlBlock [65]byte
}

// ParseWitness enforces the structural shape of the first matching witness
// in a transaction's inputs: exactly 5 items, both signatures 64 bytes,
// control block 65 bytes, and the script must decompile.
func ParseWitness(items [][]byte) (*Witness, []binary.Item, error) {
	if len(items) != 5 {
		return nil, nil, errs.Wrap(errs.KindParse, "witness must have exactly 5 items", nil)
	}
	sig1, sig2, preimage, script, controlBlock := items[0], items[1], items[2], items[3], items[4]
	if len(sig1) != 64 || len(sig2) != 64 {
		return nil, nil, errs.Wrap(errs.KindParse, "witness signatures must be 64 bytes", nil)
	}
	if len(controlBlock) != 65 {
		return nil, nil, errs.Wrap(errs.KindParse, "control block must be 65 bytes", nil)
	}
	decoded, err := binary.Decode(script)
	if err != nil {
		return nil, nil, err
	}

	w := &Witness{Preimage: preimage, Script: script}
	copy(w.Sig1[:], sig1)
	copy(w.Sig2[:], sig2)
	copy(w.ControlBlock[:], controlBlock)
	return w, decoded, nil
}
