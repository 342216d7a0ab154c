package main

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsEmptyDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty datadir")
	}
}

func TestValidateRejectsUnknownNetwork(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = "devnet"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown network")
	}
}

func TestValidateRejectsNonPositiveIntervals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FeeInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero fee interval")
	}
}

func TestChainParamsSelectsNetwork(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = "testnet"
	if cfg.chainParams().Name != "testnet3" {
		t.Fatalf("expected testnet3 params, got %s", cfg.chainParams().Name)
	}
}

func TestConsensusViewCarriesDefaultParameters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = "regtest"
	v := cfg.consensusView()
	if v.MinBaseGas == 0 {
		t.Fatal("expected consensus view to carry default gas parameters")
	}
}
