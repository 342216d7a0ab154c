package types

import "testing"

func TestBytesToHashLeftPadsShortInput(t *testing.T) {
	h := BytesToHash([]byte{1, 2, 3})
	want := Hash{}
	want[29], want[30], want[31] = 1, 2, 3
	if h != want {
		t.Fatalf("got %x, want %x", h, want)
	}
}

func TestBytesToHashTruncatesLongInput(t *testing.T) {
	long := make([]byte, 40)
	for i := range long {
		long[i] = byte(i)
	}
	h := BytesToHash(long)
	if h[0] != long[8] || h[31] != long[39] {
		t.Fatalf("expected trailing 32 bytes kept, got %x", h)
	}
}

func TestHashIsZero(t *testing.T) {
	if !(Hash{}).IsZero() {
		t.Fatal("zero-value Hash should report IsZero")
	}
	nonZero := Hash{1}
	if nonZero.IsZero() {
		t.Fatal("nonzero Hash should not report IsZero")
	}
}

func TestHashEqual(t *testing.T) {
	a := Hash{1, 2, 3}
	b := Hash{1, 2, 3}
	c := Hash{1, 2, 4}
	if !a.Equal(b) {
		t.Fatal("expected identical hashes to be equal")
	}
	if a.Equal(c) {
		t.Fatal("expected differing hashes to be unequal")
	}
}

func TestConstantTimeEqualBytes(t *testing.T) {
	if !ConstantTimeEqualBytes([]byte("abc"), []byte("abc")) {
		t.Fatal("expected identical byte slices to compare equal")
	}
	if ConstantTimeEqualBytes([]byte("abc"), []byte("abd")) {
		t.Fatal("expected differing byte slices to compare unequal")
	}
	if ConstantTimeEqualBytes([]byte("abc"), []byte("ab")) {
		t.Fatal("expected differing-length slices to compare unequal")
	}
}

func TestXOnlyPubKey32RoundTrip(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	k := BytesToXOnly(raw)
	if k.IsZero() {
		t.Fatal("expected nonzero key")
	}
	if k.Hash() != Hash(k) {
		t.Fatal("expected Hash() to reinterpret the same 32 bytes")
	}
}

func TestCompressedPubKey33RoundTrip(t *testing.T) {
	raw := make([]byte, 33)
	raw[0] = 0x02
	k := BytesToCompressed(raw)
	if k.IsZero() {
		t.Fatal("expected nonzero key")
	}
	if len(k.Bytes()) != 33 {
		t.Fatalf("expected 33-byte key, got %d", len(k.Bytes()))
	}
}

func TestTxTypeString(t *testing.T) {
	cases := map[TxType]string{
		Generic:     "generic",
		Deployment:  "deployment",
		Interaction: "interaction",
		TxType(99):  "unknown",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Fatalf("TxType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}

func TestInputIsCoinbase(t *testing.T) {
	coinbase := Input{PrevTxid: Hash{}}
	if !coinbase.IsCoinbase() {
		t.Fatal("expected zero PrevTxid to be a coinbase input")
	}
	normal := Input{PrevTxid: Hash{1}}
	if normal.IsCoinbase() {
		t.Fatal("expected nonzero PrevTxid to not be a coinbase input")
	}
}

func TestTransactionIsProtocol(t *testing.T) {
	for _, typ := range []TxType{Deployment, Interaction} {
		tx := &Transaction{Type: typ}
		if !tx.IsProtocol() {
			t.Fatalf("expected %v to be protocol", typ)
		}
	}
	generic := &Transaction{Type: Generic}
	if generic.IsProtocol() {
		t.Fatal("expected Generic to not be protocol")
	}
}

func TestBlockStrippedUTXOsOnlyIncludesGeneric(t *testing.T) {
	b := &Block{Transactions: []*Transaction{
		{Type: Generic, Outputs: []Output{{Index: 0, Value: 100}}},
		{Type: Interaction, Outputs: []Output{{Index: 0, Value: 200}}},
	}}
	out := b.StrippedUTXOs()
	if len(out) != 1 || out[0].Value != 100 {
		t.Fatalf("expected only the generic tx's outputs, got %+v", out)
	}
}

func TestBlockTxidList(t *testing.T) {
	b := &Block{Transactions: []*Transaction{
		{Txid: Hash{1}},
		{Txid: Hash{2}},
	}}
	ids := b.TxidList()
	if len(ids) != 2 || ids[0] != (Hash{1}) || ids[1] != (Hash{2}) {
		t.Fatalf("unexpected txid list: %+v", ids)
	}
}

func TestBlockIsExecuted(t *testing.T) {
	b := NewBlock(Header{Height: 1})
	if b.IsExecuted() {
		t.Fatal("fresh block should not be executed")
	}
	b.Computed = &Computed{}
	if !b.IsExecuted() {
		t.Fatal("block with Computed set should be executed")
	}
}

func TestReceiptSucceeded(t *testing.T) {
	ok := &Receipt{}
	if !ok.Succeeded() {
		t.Fatal("receipt with no revert bytes should have succeeded")
	}
	reverted := &Receipt{RevertBytes: []byte("nope")}
	if reverted.Succeeded() {
		t.Fatal("receipt with revert bytes should not have succeeded")
	}
}
