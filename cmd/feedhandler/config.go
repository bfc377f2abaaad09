package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultDuration       = 10 * time.Second
	defaultRingCapacity   = 1 << 16
	defaultPoolCapacity   = 1 << 18
	defaultQueueCapacity  = 1 << 16
	defaultVenueCount     = 8
	defaultVenuePoolSize  = 4
	defaultQueueConsumers = 2
	defaultLowWatermark   = uint64(1 << 10)
	defaultHighWatermark  = uint64(1 << 15)
	defaultMetricsAddr    = ":9090"

	primaryVenueID = 1
)

// Config holds every knob the driver needs. Duration comes from the positional argument; every
// other field is resolved through viper, where an explicitly set flag wins over the environment
// (MARKETFEED_*), which wins over an optional config file, which wins over the flag defaults.
type Config struct {
	Duration      time.Duration
	RingCapacity  int
	PoolCapacity  int
	QueueCapacity int
	PrimaryCPU    int
	ConsumerCPU   int
	UseHugePages  bool
	NumVenues     int
	VenuePoolSize int
	QueueConsumers int
	LowWatermark  uint64
	HighWatermark uint64
	MetricsAddr   string
	ProdLog       bool
}

// loadConfig resolves a Config from viper (flags/env/config-file) plus the optional positional
// duration argument. The run duration is taken only from that argument (defaultDuration when it
// is absent); no flag, environment variable, or config key sets it.
func loadConfig(cmd *cobra.Command, args []string) (Config, error) {
	viper.SetEnvPrefix("MARKETFEED")
	viper.AutomaticEnv()

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}

	cfg := Config{
		Duration:       defaultDuration,
		RingCapacity:   viper.GetInt("ring-capacity"),
		PoolCapacity:   viper.GetInt("pool-capacity"),
		QueueCapacity:  viper.GetInt("queue-capacity"),
		PrimaryCPU:     viper.GetInt("primary-cpu"),
		ConsumerCPU:    viper.GetInt("consumer-cpu"),
		UseHugePages:   viper.GetBool("huge-pages"),
		NumVenues:      viper.GetInt("venues"),
		VenuePoolSize:  viper.GetInt("venue-pool-size"),
		QueueConsumers: viper.GetInt("queue-consumers"),
		LowWatermark:   viper.GetUint64("low-watermark"),
		HighWatermark:  viper.GetUint64("high-watermark"),
		MetricsAddr:    viper.GetString("metrics-addr"),
		ProdLog:        viper.GetBool("prod-log"),
	}

	if len(args) == 1 {
		seconds, err := strconv.Atoi(args[0])
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("duration argument %q must be a positive whole number of seconds", args[0])
		}
		cfg.Duration = time.Duration(seconds) * time.Second
	}

	if cfg.QueueConsumers <= 0 {
		cfg.QueueConsumers = 1
	}

	return cfg, nil
}
