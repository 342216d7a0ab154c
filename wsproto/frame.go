package wsproto

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"

	"github.com/opnet-network/indexer/errs"
)

// ClientFrame is a decoded incoming message: [opcode u8][request_id u32 LE
// if not ping/handshake][payload...].
type ClientFrame struct {
	Opcode    Opcode
	RequestID uint32
	Payload   []byte
}

// ServerFrame is an outgoing response: [opcode u8][request_id u32 LE]
// [payload...], the request_id always echoed back.
type ServerFrame struct {
	Opcode    Opcode
	RequestID uint32
	Payload   []byte
}

// DecodeClientFrame parses a raw WebSocket message into its opcode,
// request id and payload.
func DecodeClientFrame(raw []byte) (ClientFrame, error) {
	if len(raw) < 1 {
		return ClientFrame{}, errs.Wrap(errs.KindParse, "empty frame", nil)
	}
	op := Opcode(raw[0])
	rest := raw[1:]
	if requestIDFree(op) {
		return ClientFrame{Opcode: op, Payload: rest}, nil
	}
	if len(rest) < 4 {
		return ClientFrame{}, errs.Wrap(errs.KindParse, "missing request id", nil)
	}
	reqID := binary.LittleEndian.Uint32(rest[:4])
	return ClientFrame{Opcode: op, RequestID: reqID, Payload: rest[4:]}, nil
}

// Encode serializes a ServerFrame back onto the wire.
func (f ServerFrame) Encode() []byte {
	out := make([]byte, 1+4+len(f.Payload))
	out[0] = byte(f.Opcode)
	binary.LittleEndian.PutUint32(out[1:5], f.RequestID)
	copy(out[5:], f.Payload)
	return out
}

// EncodePayload serializes v for a ServerFrame's payload. Real protobuf
// codegen could not be produced in this environment (no protoc invocation
// is available); gob gives the same "encode once per message type"
// contract and is swappable for generated protobuf types behind this one
// seam without touching frame or opcode handling (see DESIGN.md).
func EncodePayload(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, errs.Wrap(errs.KindParse, "failed to encode payload", err)
	}
	return buf.Bytes(), nil
}

// DecodePayload deserializes a ClientFrame's payload into v.
func DecodePayload(payload []byte, v any) error {
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(v); err != nil {
		return errs.Wrap(errs.KindParse, "failed to decode payload", err)
	}
	return nil
}
