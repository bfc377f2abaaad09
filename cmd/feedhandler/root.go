package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd builds the feedhandler command. Its single positional argument is the run
// duration in whole seconds; every other knob is a flag, bindable by environment variable
// (MARKETFEED_*) or config file through viper.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedhandler [duration-seconds]",
		Short: "Run the market data feed handler demonstration driver",
		Long: `feedhandler bootstraps the lock-free data plane (object pool, SPSC ring, MPMC
queue, latency histograms) and drives it with a pinned primary venue plus a pool of
simulated secondary venues for a fixed duration, reporting throughput and latency
statistics once per second and on exit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "path to a config file (yaml, json, toml, ...)")
	flags.Int("ring-capacity", defaultRingCapacity, "SPSC ring capacity, rounded up to a power of two")
	flags.Int("pool-capacity", defaultPoolCapacity, "object pool capacity")
	flags.Int("queue-capacity", defaultQueueCapacity, "MPMC queue node arena size")
	flags.Int("primary-cpu", 0, "CPU id pinned by the primary venue's producer goroutine")
	flags.Int("consumer-cpu", 1, "CPU id pinned by the primary venue's consumer goroutine")
	flags.Bool("huge-pages", false, "back the object pool arena with huge pages (best-effort)")
	flags.Int("venues", defaultVenueCount, "number of simulated secondary venues")
	flags.Int("venue-pool-size", defaultVenuePoolSize, "ants goroutine pool size driving the simulated venues")
	flags.Int("queue-consumers", defaultQueueConsumers, "number of goroutines draining the MPMC queue")
	flags.String("metrics-addr", defaultMetricsAddr, "address to serve Prometheus /metrics on")
	flags.Bool("prod-log", false, "use zap's production encoder instead of the development one")
	flags.Uint64("low-watermark", defaultLowWatermark, "ring occupancy below which BelowLowWatermark reports true")
	flags.Uint64("high-watermark", defaultHighWatermark, "ring occupancy above which HighWatermarkExceeded reports true")

	_ = viper.BindPFlags(flags)
	return cmd
}

// Execute runs the feedhandler CLI, returning any error for main to report and exit on.
func Execute() error {
	return newRootCmd().Execute()
}
