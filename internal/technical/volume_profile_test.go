package technical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intraday-levels/internal/dto"
)

func TestVolumeProfileFixedBins(t *testing.T) {
	tests := []struct {
		name    string
		candles []dto.Candle
		bins    int
		wantErr error
		check   func(t *testing.T, vp dto.VolumeProfile)
	}{
		{
			name:    "empty input errors",
			candles: nil,
			bins:    200,
			wantErr: ErrEmptyInput,
		},
		{
			name: "single flat candle collapses to its price",
			candles: []dto.Candle{
				{Time: 0, Open: 100, High: 100, Low: 100, Close: 100, Volume: 5},
			},
			bins: 200,
			check: func(t *testing.T, vp dto.VolumeProfile) {
				assert.Equal(t, 100.0, vp.POC)
				assert.Equal(t, 100.0, vp.VAH)
				assert.Equal(t, 100.0, vp.VAL)
			},
		},
		{
			name: "zero total volume collapses to range mid",
			candles: []dto.Candle{
				{Time: 0, Open: 99, High: 102, Low: 98, Close: 100, Volume: 0},
				{Time: 60, Open: 100, High: 104, Low: 100, Close: 103, Volume: 0},
			},
			bins: 200,
			check: func(t *testing.T, vp dto.VolumeProfile) {
				assert.True(t, vp.Degenerate())
				assert.Equal(t, 101.0, vp.POC)
			},
		},
		{
			name: "poc lands on the heaviest price",
			candles: []dto.Candle{
				{Time: 0, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1},
				{Time: 60, Open: 110, High: 111, Low: 109, Close: 110, Volume: 50},
				{Time: 120, Open: 120, High: 121, Low: 119, Close: 120, Volume: 1},
			},
			bins: 200,
			check: func(t *testing.T, vp dto.VolumeProfile) {
				assert.InDelta(t, 110.0, vp.POC, 0.5)
				assert.LessOrEqual(t, vp.VAL, vp.POC)
				assert.LessOrEqual(t, vp.POC, vp.VAH)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp, err := VolumeProfileFixedBins(tt.candles, tt.bins)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, vp)
		})
	}
}

func TestVolumeProfileOrderingInvariant(t *testing.T) {
	candles := make([]dto.Candle, 0, 100)
	price := 50000.0
	for i := 0; i < 100; i++ {
		// deterministic wobble so bins away from the center stay populated
		drift := float64((i*37)%200) - 100.0
		p := price + drift
		candles = append(candles, dto.Candle{
			Time:   int64(i * 900),
			Open:   p,
			High:   p + 15,
			Low:    p - 15,
			Close:  p + 5,
			Volume: float64(1 + (i*13)%7),
		})
	}

	fixed, err := VolumeProfileFixedBins(candles, 200)
	require.NoError(t, err)
	assert.LessOrEqual(t, fixed.VAL, fixed.POC)
	assert.LessOrEqual(t, fixed.POC, fixed.VAH)

	pct, err := VolumeProfilePctBins(candles, DefaultBinPct)
	require.NoError(t, err)
	assert.LessOrEqual(t, pct.VAL, pct.POC)
	assert.LessOrEqual(t, pct.POC, pct.VAH)

	lo, hi := priceRange(candles)
	for _, vp := range []dto.VolumeProfile{fixed, pct} {
		assert.GreaterOrEqual(t, vp.VAL, lo)
		assert.LessOrEqual(t, vp.VAH, hi)
	}
}

func TestVolumeProfilePctBinsPartialTopBin(t *testing.T) {
	// Range 100..101.1 with the unit bin-width floor derives two bins. Before
	// the width is re-derived the top bin would span 101..102 and its center
	// (101.5) would sit above the range high. All volume lands in that top
	// bin, so the POC must still respect val <= poc <= vah inside the range.
	candles := []dto.Candle{
		{Time: 0, Open: 100.0, High: 100.3, Low: 100.0, Close: 100.1, Volume: 1},
		{Time: 900, Open: 100.9, High: 101.1, Low: 100.9, Close: 101.0, Volume: 5},
	}

	vp, err := VolumeProfilePctBins(candles, DefaultBinPct)
	require.NoError(t, err)

	assert.LessOrEqual(t, vp.VAL, vp.POC)
	assert.LessOrEqual(t, vp.POC, vp.VAH)
	assert.LessOrEqual(t, vp.VAH, 101.1)
	assert.GreaterOrEqual(t, vp.VAL, 100.0)
}

func TestVolumeProfilePctBinsEmpty(t *testing.T) {
	_, err := VolumeProfilePctBins(nil, DefaultBinPct)
	require.ErrorIs(t, err, ErrEmptyInput)
}
