package consensus

import "testing"

func TestDefaultMainnetIsActiveByDefault(t *testing.T) {
	v := DefaultMainnet()
	if !v.IsActive() {
		t.Fatal("expected DefaultMainnet to start active")
	}
	if v.Network != Mainnet {
		t.Fatalf("expected Mainnet network, got %v", v.Network)
	}
}

func TestSetBlockHeightUpdatesAtomically(t *testing.T) {
	v := DefaultMainnet()
	if v.BlockHeight() != 0 {
		t.Fatalf("expected initial height 0, got %d", v.BlockHeight())
	}
	v.SetBlockHeight(42)
	if v.BlockHeight() != 42 {
		t.Fatalf("expected height 42, got %d", v.BlockHeight())
	}
}

func TestSetActiveToggles(t *testing.T) {
	v := DefaultMainnet()
	v.SetActive(false)
	if v.IsActive() {
		t.Fatal("expected consensus to be inactive after SetActive(false)")
	}
	v.SetActive(true)
	if !v.IsActive() {
		t.Fatal("expected consensus to be active again after SetActive(true)")
	}
}

func TestPrevBaseGasDefaultMatchesMinBaseGasTimesScalingFactor(t *testing.T) {
	v := DefaultMainnet()
	want := v.MinBaseGas * v.ScalingFactor
	if got := v.PrevBaseGasDefault(); got != want {
		t.Fatalf("PrevBaseGasDefault() = %d, want %d", got, want)
	}
}
