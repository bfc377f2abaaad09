package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := loadConfig(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultDuration, cfg.Duration)
	assert.Equal(t, defaultRingCapacity, cfg.RingCapacity)
	assert.Equal(t, defaultVenueCount, cfg.NumVenues)
	assert.Equal(t, defaultQueueConsumers, cfg.QueueConsumers)
}

func TestLoadConfigPositionalDurationOverridesDefault(t *testing.T) {
	viper.Reset()
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := loadConfig(cmd, []string{"30"})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Duration)
}

func TestLoadConfigRejectsNonNumericDuration(t *testing.T) {
	viper.Reset()
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	_, err := loadConfig(cmd, []string{"soon"})
	assert.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveDuration(t *testing.T) {
	viper.Reset()
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	_, err := loadConfig(cmd, []string{"0"})
	assert.Error(t, err)
}

func TestLoadConfigQueueConsumersFloorsAtOne(t *testing.T) {
	viper.Reset()
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--queue-consumers=0"}))

	cfg, err := loadConfig(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.QueueConsumers)
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 1024: 1024, 1025: 2048}
	for in, want := range cases {
		assert.Equal(t, want, nextPow2(in), "nextPow2(%d)", in)
	}
}
