// Package envelope recognizes Deployment/Interaction witness-script
// shapes and extracts their embedded fields. The shapes are
// described as data (a table of match operations) rather than hand-rolled
// shift/assert chains, so a future envelope version is a table literal, not
// a new code path.
package envelope

import (
	"github.com/opnet-network/indexer/binary"
	"github.com/opnet-network/indexer/errs"
)

// OpKind tags one step of a Matcher table.
type OpKind int

const (
	// ExpectOp requires the next item to be the bare opcode Op (no data).
	ExpectOp OpKind = iota
	// ExpectData requires the next item to carry a data push; if Len > 0
	// the push must be exactly that long.
	ExpectData
	// Capture behaves like ExpectData but also records the pushed bytes
	// under Name in the match result.
	Capture
	// CaptureRest consumes exactly one data item of any length and
	// records it under Name; used for variable-length calldata/bytecode
	// pushes that precede a fixed trailer.
	CaptureRest
)

// MatchOp is one step of a witness-script shape table.
type MatchOp struct {
	Kind OpKind
	Op   byte
	Len  int
	Name string
}

// Matcher is an ordered shape description for one envelope variant.
type Matcher []MatchOp

// Result holds every named capture from a successful match.
type Result map[string][]byte

// Build re-serializes a Matcher shape back into script bytes using the
// values captured in res, reusing this package's own push-encoding rules.
// This lets the address-reconstruction step rebuild a byte-identical
// tapscript from the envelope's named fields instead of trusting the
// on-chain witness script content directly.
func (m Matcher) Build(res Result) ([]byte, error) {
	var out []byte
	for _, step := range m {
		switch step.Kind {
		case ExpectOp:
			out = append(out, step.Op)
		case ExpectData:
			return nil, errs.Wrap(errs.KindValidation, "cannot rebuild a fixed ExpectData step without a value", nil)
		case Capture, CaptureRest:
			data, ok := res[step.Name]
			if !ok {
				return nil, errs.Wrap(errs.KindValidation, "missing capture while rebuilding script", nil)
			}
			out = append(out, encodePush(data)...)
		}
	}
	return out, nil
}

func encodePush(data []byte) []byte {
	n := len(data)
	switch {
	case n == 0:
		return []byte{0x00}
	case n <= 0x4b:
		return append([]byte{byte(n)}, data...)
	case n <= 0xff:
		return append([]byte{binary.OpPushData1, byte(n)}, data...)
	case n <= 0xffff:
		return append([]byte{binary.OpPushData2, byte(n), byte(n >> 8)}, data...)
	default:
		return append([]byte{binary.OpPushData4, byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}, data...)
	}
}

// Match walks items against m in lock-step. It returns a ParseError on the
// first mismatch rather than attempting any backtracking: envelope shapes
// are strictly positional.
func (m Matcher) Match(items []binary.Item) (Result, error) {
	res := make(Result)
	if len(items) != len(m) {
		return nil, errs.Wrap(errs.KindParse, "witness script item count mismatch", nil)
	}
	for idx, step := range m {
		item := items[idx]
		switch step.Kind {
		case ExpectOp:
			if item.IsData() || item.Op != step.Op {
				return nil, errs.Wrap(errs.KindParse, "unexpected opcode in witness script", nil)
			}
		case ExpectData:
			if !item.IsData() {
				return nil, errs.Wrap(errs.KindParse, "expected data push in witness script", nil)
			}
			if step.Len > 0 && len(item.Data) != step.Len {
				return nil, errs.Wrap(errs.KindParse, "unexpected push length in witness script", nil)
			}
		case Capture, CaptureRest:
			if !item.IsData() {
				return nil, errs.Wrap(errs.KindParse, "expected capturable push in witness script", nil)
			}
			if step.Kind == Capture && step.Len > 0 && len(item.Data) != step.Len {
				return nil, errs.Wrap(errs.KindParse, "unexpected capture length in witness script", nil)
			}
			res[step.Name] = item.Data
		}
	}
	return res, nil
}
