package binary

import (
	"bytes"
	"compress/gzip"
	"testing"
)

func TestDecodeDirectPush(t *testing.T) {
	script := []byte{0x02, 0xaa, 0xbb, OpDup}
	items, err := Decode(script)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	if !bytes.Equal(items[0].Data, []byte{0xaa, 0xbb}) {
		t.Fatalf("unexpected push data: %x", items[0].Data)
	}
	if items[1].Op != OpDup || items[1].IsData() {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
}

func TestDecodeTruncatedPush(t *testing.T) {
	if _, err := Decode([]byte{0x05, 0x01, 0x02}); err == nil {
		t.Fatal("expected error for truncated push")
	}
}

func TestOpcodeChecksum(t *testing.T) {
	items := []Item{{Op: OpDup}, {Op: 0x02, Data: []byte{1, 2}}, {Op: OpEqualVerify}}
	got := OpcodeChecksum(items)
	want := []byte{OpDup, 0x02, OpEqualVerify}
	if !bytes.Equal(got, want) {
		t.Fatalf("checksum mismatch: got %x want %x", got, want)
	}
}

func TestDecompressBoundedRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("op_net"), 100)
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	out, err := DecompressBounded(buf.Bytes(), len(payload)+10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatal("round-trip mismatch")
	}
}

func TestDecompressBoundedRejectsOversized(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 1000)
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write(payload)
	_ = zw.Close()

	if _, err := DecompressBounded(buf.Bytes(), 10); err == nil {
		t.Fatal("expected error for oversized output")
	}
}

func TestDecompressBoundedPassthroughWhenNotGzipped(t *testing.T) {
	plain := []byte{0x01, 0x02, 0x03}
	out, err := DecompressBounded(plain, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(out, plain) {
		t.Fatal("expected passthrough of non-gzip data")
	}
}
