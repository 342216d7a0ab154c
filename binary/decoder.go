// Package binary turns raw witness-script bytes into a flat sequence of
// opcode/data items, and decompresses GZIP-prefixed bytecode/calldata
// payloads with a hard output-size bound.
package binary

import (
	"github.com/opnet-network/indexer/errs"
)

// Item is either a bare opcode (Data == nil) or a data push (Op holds the
// push opcode that produced it, Data holds the pushed bytes).
type Item struct {
	Op   byte
	Data []byte
}

func (i Item) IsData() bool { return i.Data != nil }

// Bitcoin-script push opcodes relevant to witness scripts.
const (
	OpPushData1 = 0x4c
	OpPushData2 = 0x4d
	OpPushData4 = 0x4e
	Op1Negate   = 0x4f
	Op0         = 0x00
	Op1         = 0x51
	OpDepth     = 0x74
	OpDup       = 0x76
	OpNumEqual  = 0x9c
	OpEqualVerify = 0x88
	OpHash160   = 0xa9
	OpHash256   = 0xaa
	OpCheckSigVerify = 0xad
	OpToAltStack = 0x6b
	OpIf        = 0x63
	OpElse      = 0x67
	OpEndIf     = 0x68
)

// Decode decompiles raw script bytes into a flat item list. It never
// returns a partially-decoded script on error: a truncated push immediately
// fails with a ParseError so the caller can demote the transaction to
// Generic instead of guessing at the remainder.
func Decode(script []byte) ([]Item, error) {
	var items []Item
	i := 0
	for i < len(script) {
		op := script[i]
		i++
		switch {
		case op == 0x00:
			items = append(items, Item{Op: op})
		case op >= 0x01 && op <= 0x4b:
			n := int(op)
			if i+n > len(script) {
				return nil, errs.Wrap(errs.KindParse, "truncated direct push", nil)
			}
			items = append(items, Item{Op: op, Data: script[i : i+n]})
			i += n
		case op == OpPushData1:
			if i+1 > len(script) {
				return nil, errs.Wrap(errs.KindParse, "truncated PUSHDATA1 length", nil)
			}
			n := int(script[i])
			i++
			if i+n > len(script) {
				return nil, errs.Wrap(errs.KindParse, "truncated PUSHDATA1 payload", nil)
			}
			items = append(items, Item{Op: op, Data: script[i : i+n]})
			i += n
		case op == OpPushData2:
			if i+2 > len(script) {
				return nil, errs.Wrap(errs.KindParse, "truncated PUSHDATA2 length", nil)
			}
			n := int(script[i]) | int(script[i+1])<<8
			i += 2
			if i+n > len(script) {
				return nil, errs.Wrap(errs.KindParse, "truncated PUSHDATA2 payload", nil)
			}
			items = append(items, Item{Op: op, Data: script[i : i+n]})
			i += n
		case op == OpPushData4:
			if i+4 > len(script) {
				return nil, errs.Wrap(errs.KindParse, "truncated PUSHDATA4 length", nil)
			}
			n := int(script[i]) | int(script[i+1])<<8 | int(script[i+2])<<16 | int(script[i+3])<<24
			i += 4
			if n < 0 || i+n > len(script) {
				return nil, errs.Wrap(errs.KindParse, "truncated PUSHDATA4 payload", nil)
			}
			items = append(items, Item{Op: op, Data: script[i : i+n]})
			i += n
		default:
			items = append(items, Item{Op: op})
		}
	}
	return items, nil
}

// OpcodeChecksum concatenates the Op byte of every item (for a data push
// that is its push opcode; the pushed payload bytes are left out). The
// envelope classifier passes it only the bare-opcode items, so its shape
// match against the known opcode-checksum table does not depend on the
// captured data lengths.
func OpcodeChecksum(items []Item) []byte {
	out := make([]byte, 0, len(items))
	for _, it := range items {
		out = append(out, it.Op)
	}
	return out
}
