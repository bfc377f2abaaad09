// ════════════════════════════════════════════════════════════════════════════════════════════════
// DRIVER ORCHESTRATION
// ════════════════════════════════════════════════════════════════════════════════════════════════
//
// Bootstraps the data plane, launches the pinned primary producer/consumer pair, the simulated
// secondary venues (run through a bounded ants goroutine pool), the queue consumers, the
// reporter, and the Prometheus HTTP endpoint, then waits for the configured duration, an
// interrupt signal, or the first goroutine failure — whichever comes first — before tearing
// everything down in order.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nanofeed/marketfeed/lifecycle"
	"github.com/nanofeed/marketfeed/metrics"
	"github.com/nanofeed/marketfeed/mpmcqueue"
	"github.com/nanofeed/marketfeed/parser"
	"github.com/nanofeed/marketfeed/pool"
	"github.com/nanofeed/marketfeed/spscring"
	"github.com/nanofeed/marketfeed/threadutil"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func run(ctx context.Context, cfg Config) error {
	logger, syncLogger := newLogger(cfg.ProdLog)
	defer func() { _ = syncLogger() }()

	logger.Infow("starting feed handler",
		"duration", cfg.Duration, "venues", cfg.NumVenues,
		"ring_capacity", cfg.RingCapacity, "pool_capacity", cfg.PoolCapacity,
		"queue_capacity", cfg.QueueCapacity)

	evPool := pool.New(cfg.PoolCapacity, cfg.UseHugePages)
	logger.Infow("object pool ready", "capacity", evPool.Capacity(), "huge_pages", evPool.UsingHugePages())

	ring := spscring.New(nextPow2(cfg.RingCapacity))
	ring.SetWatermarks(cfg.LowWatermark, cfg.HighWatermark)

	queue := mpmcqueue.New(cfg.QueueCapacity)
	bundle := metrics.New()
	state := lifecycle.New()
	reg := buildVenueRegistry(cfg.NumVenues)
	logVenueRegistry(logger, reg, cfg.NumVenues)

	promRegistry := prometheus.NewRegistry()
	if err := promRegistry.Register(metrics.NewPrometheusCollector(bundle)); err != nil {
		return fmt.Errorf("registering prometheus collector: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	httpServer := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	venuePool, err := ants.NewPool(cfg.VenuePoolSize)
	if err != nil {
		return fmt.Errorf("building venue goroutine pool: %w", err)
	}
	defer venuePool.Release()

	runCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		select {
		case <-sigCh:
			logger.Info("received interrupt, shutting down")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	primaryDone := make(chan struct{})
	g.Go(func() error {
		runPrimaryProducer(gctx, cfg.PrimaryCPU, ring, evPool, state, bundle)
		return nil
	})
	threadutil.PinnedConsumer(cfg.ConsumerCPU, ring, state, primaryConsumerHandler(bundle), primaryDone)

	for i := 0; i < cfg.QueueConsumers; i++ {
		g.Go(func() error {
			runQueueConsumer(gctx, queue, state, bundle)
			return nil
		})
	}

	g.Go(func() error { return runVenueSimulators(gctx, venuePool, cfg.NumVenues, queue, bundle) })

	g.Go(func() error {
		runReporter(gctx, logger, bundle)
		return nil
	})

	g.Go(func() error {
		logger.Infow("serving metrics", "addr", cfg.MetricsAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	<-gctx.Done()
	state.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = httpServer.Shutdown(shutdownCtx)
	shutdownCancel()

	<-primaryDone

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	snap := bundle.Snapshot()
	logger.Infow("feed handler stopped",
		"received", snap.MessagesReceived, "processed", snap.MessagesProcessed,
		"dropped", snap.MessagesDropped, "sequence_gaps", snap.SequenceGaps,
		"parse_errors", snap.ParseErrors, "e2e_p99_us", bundle.EndToEndLatency.P99()/1000)
	return nil
}

// runVenueSimulators submits one long-lived task per simulated venue to the bounded ants pool
// and waits for them all to observe cancellation.
func runVenueSimulators(ctx context.Context, venuePool *ants.Pool, numVenues int, queue *mpmcqueue.Queue, bundle *metrics.Bundle) error {
	done := make(chan struct{}, numVenues)
	dialects := []parser.Type{parser.TypeFIX, parser.TypeBinary, parser.TypeJSON}

	for i := 0; i < numVenues; i++ {
		venueID := secondaryVenueID(i)
		sym := syntheticSymbol(i)
		typ := dialects[i%len(dialects)]

		err := venuePool.Submit(func() {
			defer func() { done <- struct{}{} }()
			runVenueSimulator(ctx, venueID, sym, typ, queue, bundle)
		})
		if err != nil {
			return fmt.Errorf("submitting simulated venue %d: %w", venueID, err)
		}
	}

	for i := 0; i < numVenues; i++ {
		<-done
	}
	return nil
}

// nextPow2 rounds n up to the nearest power of two, matching spscring.New's capacity
// requirement so a config value coming from a flag, env var, or file never has to be a power
// of two on the caller's end.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
