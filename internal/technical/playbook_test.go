package technical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intraday-levels/internal/dto"
)

func TestClassifyRegime(t *testing.T) {
	tests := []struct {
		name   string
		levels dto.LevelSet
		want   dto.Regime
	}{
		{
			name: "compressed triggers read pre-breakout",
			levels: dto.LevelSet{
				DailySupport: 100, DailyResistance: 200,
				BreakdownTrigger: 145, BreakoutTrigger: 155,
			},
			want: dto.RegimePreBreakout,
		},
		{
			name: "wide triggers read range",
			levels: dto.LevelSet{
				DailySupport: 100, DailyResistance: 200,
				BreakdownTrigger: 110, BreakoutTrigger: 190,
			},
			want: dto.RegimeRange,
		},
		{
			name: "middle span reads trend",
			levels: dto.LevelSet{
				DailySupport: 100, DailyResistance: 200,
				BreakdownTrigger: 125, BreakoutTrigger: 175,
			},
			want: dto.RegimeTrend,
		},
		{
			name: "collapsed band does not divide by zero",
			levels: dto.LevelSet{
				DailySupport: 100, DailyResistance: 100,
				BreakdownTrigger: 95, BreakoutTrigger: 105,
			},
			want: dto.RegimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regime, ratio := ClassifyRegime(tt.levels)
			assert.Equal(t, tt.want, regime)
			assert.GreaterOrEqual(t, ratio, 0.0)
		})
	}
}

func TestBuildTradeLogicSummary(t *testing.T) {
	levels := dto.LevelSet{
		DailySupport: 100, DailyResistance: 200,
		BreakdownTrigger: 125, BreakoutTrigger: 175,
		HTFShelves: dto.HTFShelves{
			Resistance: []dto.Shelf{
				{Level: 210, Timeframe: dto.Interval4Hour},
				{Level: 260, Timeframe: dto.Interval4Hour},
				{Level: 205, Timeframe: dto.Interval1Hour},
			},
			Support: []dto.Shelf{{Level: 95, Timeframe: dto.Interval1Hour}},
		},
	}

	sum := BuildTradeLogicSummary("BTCUSDT", levels, dto.BiasBullish)

	assert.Equal(t, dto.RegimeTrend, sum.Regime)
	assert.Equal(t, dto.SideLong, sum.FocusSide)
	require.Len(t, sum.Primary, 2)
	assert.Equal(t, "S0", sum.Primary[0].ID)
	assert.Equal(t, "S7", sum.Primary[1].ID)
	require.Len(t, sum.Secondary, 4)
	for _, s := range append(sum.Primary, sum.Secondary...) {
		assert.Equal(t, dto.SideLong, s.Side)
	}

	require.NotNil(t, sum.Targets.Long)
	assert.Equal(t, 200.0, sum.Targets.Long.PrimaryHTF)
	// The two shelves closest to daily resistance, nearest first.
	assert.Equal(t, []float64{205, 210}, sum.Targets.Long.HTFExtensions)
	require.NotNil(t, sum.Targets.Short)
	assert.Equal(t, []float64{95}, sum.Targets.Short.HTFExtensions)

	assert.Contains(t, sum.Outlook, "favor long setups in BTCUSDT")
	assert.Contains(t, sum.Outlook, "Trigger Pullback - Long")
}

func TestBuildTradeLogicSummaryNeutralRange(t *testing.T) {
	levels := dto.LevelSet{
		DailySupport: 100, DailyResistance: 200,
		BreakdownTrigger: 110, BreakoutTrigger: 190,
	}

	sum := BuildTradeLogicSummary("ETHUSDT", levels, dto.BiasNeutral)

	assert.Equal(t, dto.RegimeRange, sum.Regime)
	assert.Equal(t, dto.SideNone, sum.FocusSide)
	require.Len(t, sum.Primary, 1)
	assert.Equal(t, "S5", sum.Primary[0].ID)
	assert.Contains(t, sum.Outlook, "rotation environment")
}

func TestBuildTradeLogicSummaryPreBreakoutShort(t *testing.T) {
	levels := dto.LevelSet{
		DailySupport: 100, DailyResistance: 200,
		BreakdownTrigger: 148, BreakoutTrigger: 152,
	}

	sum := BuildTradeLogicSummary("SOLUSDT", levels, dto.BiasBearish)

	assert.Equal(t, dto.RegimePreBreakout, sum.Regime)
	require.Len(t, sum.Primary, 2)
	assert.Equal(t, "S7", sum.Primary[0].ID)
	assert.Equal(t, "S0", sum.Primary[1].ID)
	assert.Contains(t, sum.Outlook, "pre-breakout")
}
