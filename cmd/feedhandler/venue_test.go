package main

import (
	"testing"

	"github.com/nanofeed/marketfeed/event"
	"github.com/nanofeed/marketfeed/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSyntheticTickRoundTripsThroughEachDialect(t *testing.T) {
	sym := event.NewSymbol("BTCUSD")

	for _, typ := range []parser.Type{parser.TypeFIX, parser.TypeBinary, parser.TypeJSON} {
		frame := encodeSyntheticTick(typ, 7, sym)
		p := parser.New(typ, 42, nil)

		var ev event.Event
		consumed, ok := p.Parse(frame, &ev)
		require.True(t, ok, "dialect %v failed to parse its own synthetic frame", typ)
		assert.Equal(t, len(frame), consumed)
		assert.Equal(t, "BTCUSD", ev.Symbol.String())
		assert.EqualValues(t, 42, ev.VenueID)
	}
}

func TestBuildVenueRegistryRegistersEveryVenue(t *testing.T) {
	reg := buildVenueRegistry(4)

	meta, ok := reg.Get(event.NewSymbol("AAPL"))
	require.True(t, ok)
	assert.EqualValues(t, primaryVenueID, meta.VenueID)
	assert.Equal(t, "primary", meta.Name)

	for i := 0; i < 4; i++ {
		meta, ok := reg.Get(syntheticSymbol(i))
		require.True(t, ok)
		assert.EqualValues(t, secondaryVenueID(i), meta.VenueID)
	}
}

func TestSecondaryVenueIDIsOffsetFromPrimary(t *testing.T) {
	assert.EqualValues(t, primaryVenueID+1, secondaryVenueID(0))
	assert.EqualValues(t, primaryVenueID+2, secondaryVenueID(1))
}
