// Command opnetd wires the in-scope OP_NET components (storage, mempool
// admission, WebSocket protocol framing, metrics, logging) into a single
// long-running process. The block-execution driver, the full query API
// behind most WebSocket opcodes, and the base-layer RPC/VM backends are
// external collaborators owned by other services; this binary only
// starts the surface it actually owns.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/opnet-network/indexer/logx"
	"github.com/opnet-network/indexer/mempool"
	"github.com/opnet-network/indexer/metrics"
	"github.com/opnet-network/indexer/storage"
	"github.com/opnet-network/indexer/wsproto"
)

var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	cfg := DefaultConfig()

	app := &cli.App{
		Name:    "opnetd",
		Usage:   "OP_NET block execution, mempool admission and WebSocket protocol daemon",
		Version: fmt.Sprintf("%s (commit %s)", version, commit),
		Flags:   buildFlags(&cfg),
		Action: func(c *cli.Context) error {
			return serve(c.Context, cfg)
		},
	}

	if err := app.Run(args); err != nil {
		fmt.Fprintf(os.Stderr, "opnetd: %v\n", err)
		return 1
	}
	return 0
}

func serve(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logx.SetDefault(logx.New(level))
	log := logx.Default().Module("opnetd")
	log.Info("starting opnetd")

	view := cfg.consensusView()
	net := cfg.chainParams()

	store, err := storage.OpenPebbleStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	rpc := &devRPC{}
	pool := mempool.New(view, net, store, store, rpc, cfg.RequireSynced)

	feeTimer := mempool.NewFeeEstimateTimer(pool, time.Duration(cfg.FeeInterval)*time.Second, cfg.FeeConfTarget)
	heightWatcher := mempool.NewHeightWatcher(pool, time.Duration(cfg.HeightInterval)*time.Second)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go feeTimer.Run(runCtx)
	go heightWatcher.Run(runCtx)

	reg := prometheus.NewRegistry()
	mset := metrics.New(reg)

	chainID := uint32(net.Net)
	handlers := buildHandlers(view, chainID, pool)
	wsHandler := wsproto.NewHandler(view, 1, chainID, 10, handlers)

	go reportConnectionGauge(runCtx, mset, wsHandler)

	mux := http.NewServeMux()
	mux.Handle("/ws", wsHandler)
	wsServer := &http.Server{Addr: cfg.WSAddr, Handler: mux}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

	go func() {
		log.Info("WebSocket listener starting on " + cfg.WSAddr)
		if err := wsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("websocket server: " + err.Error())
		}
	}()
	go func() {
		log.Info("metrics listener starting on " + cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server: " + err.Error())
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("received signal, shutting down: " + sig.String())

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = wsServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	return nil
}

// reportConnectionGauge samples the WebSocket handler's live connection
// count into the metrics gauge until ctx is cancelled.
func reportConnectionGauge(ctx context.Context, mset *metrics.Metrics, h *wsproto.Handler) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mset.WSConnections.Set(float64(h.ConnectionCount()))
		}
	}
}
