package main

import "github.com/urfave/cli/v2"

// buildFlags binds every CLI flag straight onto cfg's fields via
// Destination, so flag parsing leaves cfg fully populated with no
// intermediate struct.
func buildFlags(cfg *Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "datadir",
			Usage:       "data directory for pebble storage",
			Value:       cfg.DataDir,
			Destination: &cfg.DataDir,
		},
		&cli.StringFlag{
			Name:        "network",
			Usage:       "network to join (mainnet, testnet, regtest)",
			Value:       cfg.Network,
			Destination: &cfg.Network,
		},
		&cli.StringFlag{
			Name:        "ws.addr",
			Usage:       "WebSocket protocol listen address",
			Value:       cfg.WSAddr,
			Destination: &cfg.WSAddr,
		},
		&cli.StringFlag{
			Name:        "metrics.addr",
			Usage:       "Prometheus metrics listen address",
			Value:       cfg.MetricsAddr,
			Destination: &cfg.MetricsAddr,
		},
		&cli.StringFlag{
			Name:        "log.level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       cfg.LogLevel,
			Destination: &cfg.LogLevel,
		},
		&cli.BoolFlag{
			Name:        "mempool.require-synced",
			Usage:       "reject mempool submissions unless the base layer reports synchronized",
			Value:       cfg.RequireSynced,
			Destination: &cfg.RequireSynced,
		},
		&cli.IntFlag{
			Name:        "mempool.fee-interval",
			Usage:       "seconds between fee estimate refreshes",
			Value:       cfg.FeeInterval,
			Destination: &cfg.FeeInterval,
		},
		&cli.IntFlag{
			Name:        "mempool.height-interval",
			Usage:       "seconds between block height polls",
			Value:       cfg.HeightInterval,
			Destination: &cfg.HeightInterval,
		},
		&cli.IntFlag{
			Name:        "mempool.fee-conf-target",
			Usage:       "confirmation target passed to the fee estimator",
			Value:       cfg.FeeConfTarget,
			Destination: &cfg.FeeConfTarget,
		},
	}
}
