package envelope

import (
	"testing"

	"github.com/opnet-network/indexer/binary"
)

func make64() []byte { return make([]byte, 64) }
func make65() []byte { return make([]byte, 65) }

func TestParseWitnessRejectsWrongItemCount(t *testing.T) {
	for _, n := range []int{4, 6} {
		items := make([][]byte, n)
		if _, _, err := ParseWitness(items); err == nil {
			t.Fatalf("expected rejection for %d witness items", n)
		}
	}
}

func TestParseWitnessRejectsBadSignatureLength(t *testing.T) {
	items := [][]byte{make([]byte, 63), make64(), {}, {0x00}, make65()}
	if _, _, err := ParseWitness(items); err == nil {
		t.Fatal("expected rejection for short signature")
	}
}

func TestParseWitnessRejectsBadControlBlockLength(t *testing.T) {
	items := [][]byte{make64(), make64(), {}, {0x00}, make([]byte, 64)}
	if _, _, err := ParseWitness(items); err == nil {
		t.Fatal("expected rejection for short control block")
	}
}

func TestParseWitnessAccepts(t *testing.T) {
	items := [][]byte{make64(), make64(), {0xaa}, {0x00}, make65()}
	w, decoded, err := ParseWitness(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 decoded script item, got %d", len(decoded))
	}
	if len(w.Preimage) != 1 {
		t.Fatalf("preimage not preserved")
	}
}

func TestParseFeaturesBoundarySalt(t *testing.T) {
	build := func(saltLen int) []byte {
		out := make([]byte, 32)
		out = append(out, byte(saltLen))
		out = append(out, make([]byte, saltLen)...)
		out = append(out, make([]byte, 8)...)
		out = append(out, make([]byte, 33)...)
		return out
	}
	if _, err := ParseFeatures(build(31)); err == nil {
		t.Fatal("expected rejection for 31-byte salt")
	}
	if _, err := ParseFeatures(build(129)); err == nil {
		t.Fatal("expected rejection for 129-byte salt")
	}
	if _, err := ParseFeatures(build(32)); err != nil {
		t.Fatalf("expected acceptance for 32-byte salt: %v", err)
	}
	if _, err := ParseFeatures(build(128)); err != nil {
		t.Fatalf("expected acceptance for 128-byte salt: %v", err)
	}
}

func TestMatcherBuildMatchRoundTrip(t *testing.T) {
	m := Matcher{
		{Kind: ExpectOp, Op: 0x76},
		{Kind: Capture, Len: 2, Name: "magic"},
		{Kind: CaptureRest, Name: "calldata"},
	}
	res := Result{"magic": []byte{'o', 'p'}, "calldata": []byte{1, 2, 3, 4}}
	script, err := m.Build(res)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	decoded, err := binary.Decode(script)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	got, err := m.Match(decoded)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if string(got["magic"]) != "op" {
		t.Fatalf("magic mismatch: %v", got["magic"])
	}
}
