package types

// CompressedPubKey33 is a "legacy" 33-byte compressed secp256k1 public key.
// Kept as a distinct named type from XOnlyPubKey32 so the two byte widths
// can never be assigned to one another by accident.
type CompressedPubKey33 [33]byte

func (k CompressedPubKey33) Bytes() []byte { return k[:] }

func (k CompressedPubKey33) IsZero() bool { return k == CompressedPubKey33{} }

// XOnlyPubKey32 is a "tweaked" 32-byte x-only public key derived from a
// taproot script path; it is the OP_NET contract-facing sender address.
type XOnlyPubKey32 [32]byte

func (k XOnlyPubKey32) Bytes() []byte { return k[:] }

func (k XOnlyPubKey32) IsZero() bool { return k == XOnlyPubKey32{} }

func (k XOnlyPubKey32) Hash() Hash { return Hash(k) }

func BytesToXOnly(b []byte) XOnlyPubKey32 {
	var k XOnlyPubKey32
	copy(k[:], b)
	return k
}

func BytesToCompressed(b []byte) CompressedPubKey33 {
	var k CompressedPubKey33
	copy(k[:], b)
	return k
}

// ContractAddress identifies a deployed contract; distinct string type
// rather than a bare string to keep call sites self-documenting.
type ContractAddress string
