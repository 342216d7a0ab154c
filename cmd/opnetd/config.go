package main

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/opnet-network/indexer/consensus"
)

// Config is every knob the daemon exposes on the command line, scoped to
// what opnetd actually owns: storage location, network selection, the
// WebSocket listener and the mempool's safety flags.
type Config struct {
	DataDir string

	Network string // mainnet, testnet, regtest

	WSAddr      string
	MetricsAddr string

	LogLevel string

	RequireSynced   bool
	FeeInterval     int // seconds
	HeightInterval  int // seconds
	FeeConfTarget   int
}

// DefaultConfig gives every flag a sane standalone default so `opnetd`
// with no arguments starts something.
func DefaultConfig() Config {
	return Config{
		DataDir:        "./opnetd-data",
		Network:        "mainnet",
		WSAddr:         "127.0.0.1:9944",
		MetricsAddr:    "127.0.0.1:9184",
		LogLevel:       "info",
		RequireSynced:  true,
		FeeInterval:    30,
		HeightInterval: 15,
		FeeConfTarget:  6,
	}
}

// Validate rejects a Config before anything is opened or dialed.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	switch c.Network {
	case "mainnet", "testnet", "regtest":
	default:
		return fmt.Errorf("unknown network %q", c.Network)
	}
	if c.FeeInterval <= 0 || c.HeightInterval <= 0 {
		return fmt.Errorf("watcher intervals must be positive")
	}
	return nil
}

// chainParams resolves the btcsuite network parameters matching c.Network.
func (c Config) chainParams() *chaincfg.Params {
	switch c.Network {
	case "testnet":
		return &chaincfg.TestNet3Params
	case "regtest":
		return &chaincfg.RegressionNetParams
	default:
		return &chaincfg.MainNetParams
	}
}

// consensusView builds the parameter set this process runs with. Only
// DefaultMainnet's constants are pinned down; testnet/regtest reuse the
// same numbers rather than inventing undocumented ones.
func (c Config) consensusView() *consensus.View {
	v := consensus.DefaultMainnet()
	switch c.Network {
	case "testnet":
		v.Network = consensus.Testnet
	case "regtest":
		v.Network = consensus.Regtest
	}
	return v
}
