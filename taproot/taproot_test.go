package taproot

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/opnet-network/indexer/types"
)

func testKey(t *testing.T) *btcec.PrivateKey {
	t.Helper()
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	priv, _ := btcec.PrivKeyFromBytes(seed[:])
	return priv
}

func buildControlBlock(t *testing.T, internal *btcec.PublicKey, script []byte) []byte {
	t.Helper()
	cb := txscript.ControlBlock{
		InternalKey:     internal,
		LeafVersion:     LeafVersion,
		OutputKeyYIsOdd: false,
	}
	raw, err := cb.ToBytes()
	if err != nil {
		t.Fatalf("building control block: %v", err)
	}
	return raw
}

func TestParseControlBlockRoundTrips(t *testing.T) {
	priv := testKey(t)
	script := []byte{txscript.OP_TRUE}
	raw := buildControlBlock(t, priv.PubKey(), script)

	cb, err := ParseControlBlock(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cb.InternalKey.IsEqual(priv.PubKey()) {
		t.Fatal("internal key mismatch after parse round trip")
	}
}

func TestParseControlBlockRejectsGarbage(t *testing.T) {
	if _, err := ParseControlBlock([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for malformed control block")
	}
}

func TestDerivedAddressAndVerifyOutputAddressAgree(t *testing.T) {
	priv := testKey(t)
	script := []byte{txscript.OP_TRUE}
	raw := buildControlBlock(t, priv.PubKey(), script)
	cb, err := ParseControlBlock(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	addr, xOnly, err := DerivedAddress(script, cb, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if xOnly.IsZero() {
		t.Fatal("expected nonzero derived sender key")
	}

	gotXOnly, err := VerifyOutputAddress(script, raw, addr, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if gotXOnly != xOnly {
		t.Fatalf("verify returned different key than derive: %x vs %x", gotXOnly, xOnly)
	}
}

func TestVerifyOutputAddressRejectsMismatch(t *testing.T) {
	priv := testKey(t)
	script := []byte{txscript.OP_TRUE}
	raw := buildControlBlock(t, priv.PubKey(), script)

	_, err := VerifyOutputAddress(script, raw, "bc1pnotarealaddressxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", &chaincfg.MainNetParams)
	if err == nil {
		t.Fatal("expected mismatch error against a bogus output address")
	}
}

func TestRewardChallengeScriptAndAddress(t *testing.T) {
	priv := testKey(t)
	compressed := types.BytesToCompressed(priv.PubKey().SerializeCompressed())

	script, err := RewardChallengeScript(compressed, 800_000)
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if len(script) == 0 {
		t.Fatal("expected nonempty script")
	}

	addr, err := RewardChallengeAddress(compressed, 800_000, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("address: %v", err)
	}
	if addr == "" {
		t.Fatal("expected nonempty address")
	}
}

func TestRewardChallengeAddressDeterministic(t *testing.T) {
	priv := testKey(t)
	compressed := types.BytesToCompressed(priv.PubKey().SerializeCompressed())

	a1, err := RewardChallengeAddress(compressed, 12345, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("address: %v", err)
	}
	a2, err := RewardChallengeAddress(compressed, 12345, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("address: %v", err)
	}
	if a1 != a2 {
		t.Fatal("expected deterministic address for identical inputs")
	}

	a3, err := RewardChallengeAddress(compressed, 54321, &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("address: %v", err)
	}
	if a1 == a3 {
		t.Fatal("expected different timelocks to derive different addresses")
	}
}
