package envelope

import (
	"encoding/binary"

	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/types"
)

// Features is the sub-layout of the captured "features" push: a fixed
// header (sender-key hash, salt, priority fee, miner key) followed by any
// forward-compatible flag bytes. This byte layout is this implementation's
// own decision.
type Features struct {
	SenderKeyHash  types.Hash
	Salt           []byte
	PriorityFeeSat int64
	MinerKey       types.CompressedPubKey33
	Flags          []byte
}

const featuresFixedLen = 32 + 1 + 8 + 33 // hash + saltLen + priorityFee + minerKey, salt appended between saltLen and priorityFee

// ParseFeatures decodes the fixed-layout prefix of a "features" capture.
// Salt length must satisfy 32 <= len(salt) <= 128.
func ParseFeatures(raw []byte) (*Features, error) {
	if len(raw) < 32+1 {
		return nil, errs.Wrap(errs.KindParse, "features too short", nil)
	}
	f := &Features{}
	copy(f.SenderKeyHash[:], raw[:32])
	saltLen := int(raw[32])
	if saltLen < 32 || saltLen > 128 {
		return nil, errs.Wrap(errs.KindValidation, "salt length out of range", nil)
	}
	offset := 33
	if len(raw) < offset+saltLen+8+33 {
		return nil, errs.Wrap(errs.KindParse, "features truncated", nil)
	}
	f.Salt = raw[offset : offset+saltLen]
	offset += saltLen
	f.PriorityFeeSat = int64(binary.LittleEndian.Uint64(raw[offset : offset+8]))
	offset += 8
	copy(f.MinerKey[:], raw[offset:offset+33])
	offset += 33
	f.Flags = raw[offset:]
	return f, nil
}
