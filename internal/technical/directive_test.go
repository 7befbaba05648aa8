package technical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intraday-levels/internal/dto"
)

func boolPtr(b bool) *bool { return &b }

func TestEvaluateTrade(t *testing.T) {
	levels := dto.LevelSet{BreakoutTrigger: 99, BreakdownTrigger: 95}

	tests := []struct {
		name           string
		in             EvaluateInput
		cfg            dto.TradeConfig
		wantAction     dto.DirectiveAction
		wantSide       dto.Side
		wantReason     dto.FailReason
		wantAcceptance bool
	}{
		{
			name:       "missing price",
			in:         EvaluateInput{Price: 0, Levels: levels, LockedCloses: []float64{100, 101}},
			cfg:        dto.TradeConfig{AcceptanceCloses: 2, IgnoreAlignment: true},
			wantAction: dto.DirectiveHoldFire,
			wantSide:   dto.SideNone,
			wantReason: dto.FailMissingData,
		},
		{
			name:       "missing levels",
			in:         EvaluateInput{Price: 101, LockedCloses: []float64{100, 101}},
			cfg:        dto.TradeConfig{AcceptanceCloses: 2, IgnoreAlignment: true},
			wantAction: dto.DirectiveHoldFire,
			wantSide:   dto.SideNone,
			wantReason: dto.FailMissingData,
		},
		{
			name:       "not enough locked closes",
			in:         EvaluateInput{Price: 101, Levels: levels, LockedCloses: []float64{100}},
			cfg:        dto.TradeConfig{AcceptanceCloses: 2, IgnoreAlignment: true},
			wantAction: dto.DirectiveHoldFire,
			wantSide:   dto.SideNone,
			wantReason: dto.FailInsufficientData,
		},
		{
			name:       "closes straddle the trigger",
			in:         EvaluateInput{Price: 99.5, Levels: levels, LockedCloses: []float64{98, 100}},
			cfg:        dto.TradeConfig{AcceptanceCloses: 2, IgnoreAlignment: true},
			wantAction: dto.DirectiveHoldFire,
			wantSide:   dto.SideNone,
			wantReason: dto.FailNoAcceptance,
		},
		{
			name:       "close exactly on trigger is not acceptance",
			in:         EvaluateInput{Price: 99, Levels: levels, LockedCloses: []float64{100, 99}},
			cfg:        dto.TradeConfig{AcceptanceCloses: 2, IgnoreAlignment: true},
			wantAction: dto.DirectiveHoldFire,
			wantSide:   dto.SideNone,
			wantReason: dto.FailNoAcceptance,
		},
		{
			name:           "accepted long but no alignment signal",
			in:             EvaluateInput{Price: 101, Levels: levels, LockedCloses: []float64{100, 101}},
			cfg:            dto.TradeConfig{AcceptanceCloses: 2},
			wantAction:     dto.DirectiveHoldFire,
			wantSide:       dto.SideLong,
			wantReason:     dto.FailNoAlignment,
			wantAcceptance: true,
		},
		{
			name:           "aligned long executes without override",
			in:             EvaluateInput{Price: 101, Levels: levels, LockedCloses: []float64{100, 101}, Aligned: boolPtr(true)},
			cfg:            dto.TradeConfig{AcceptanceCloses: 2},
			wantAction:     dto.DirectiveExecute,
			wantSide:       dto.SideLong,
			wantAcceptance: true,
		},
		{
			name:           "short acceptance executes",
			in:             EvaluateInput{Price: 94, Levels: levels, LockedCloses: []float64{94.5, 94}},
			cfg:            dto.TradeConfig{AcceptanceCloses: 2, IgnoreAlignment: true},
			wantAction:     dto.DirectiveExecute,
			wantSide:       dto.SideShort,
			wantAcceptance: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := EvaluateTrade(tt.in, tt.cfg)
			assert.Equal(t, tt.wantAction, d.Action)
			assert.Equal(t, tt.wantSide, d.Side)
			assert.Equal(t, tt.wantReason, d.FailReason)
			assert.Equal(t, tt.wantAcceptance, d.Acceptance)
			if tt.wantAction == dto.DirectiveHoldFire {
				assert.NotEmpty(t, d.FailReason)
				assert.Equal(t, "HOLD FIRE", string(d.Action))
			}
		})
	}
}

func TestEvaluateTradeExecuteLong(t *testing.T) {
	in := EvaluateInput{
		Price:        101,
		Levels:       dto.LevelSet{BreakoutTrigger: 99, BreakdownTrigger: 95},
		LockedCloses: []float64{100, 101},
	}
	cfg := dto.TradeConfig{AcceptanceCloses: 2, IgnoreAlignment: true, StopRiskBps: 120}

	d := EvaluateTrade(in, cfg)
	require.Equal(t, dto.DirectiveExecute, d.Action)
	assert.Equal(t, dto.SideLong, d.Side)
	assert.Equal(t, 101.0, d.Entry)
	assert.InDelta(t, 99.788, d.Stop, 1e-9)
	require.Len(t, d.Targets, 3)
	assert.InDelta(t, 101.0+101.0*40/10000, d.Targets[0], 1e-9)
	assert.InDelta(t, 101.0+101.0*80/10000, d.Targets[1], 1e-9)
	assert.InDelta(t, 101.0+101.0*140/10000, d.Targets[2], 1e-9)
	assert.Equal(t, dto.TradeTypeStructure, d.TradeType)
	assert.Equal(t, 99.0, d.Trigger)
}

func TestEvaluateTradeExecuteShortStops(t *testing.T) {
	in := EvaluateInput{
		Price:        94,
		Levels:       dto.LevelSet{BreakoutTrigger: 99, BreakdownTrigger: 95},
		LockedCloses: []float64{94.8, 94.2},
	}
	cfg := dto.TradeConfig{AcceptanceCloses: 2, IgnoreAlignment: true}

	d := EvaluateTrade(in, cfg)
	require.Equal(t, dto.DirectiveExecute, d.Action)
	assert.InDelta(t, 94+94*DefaultStopRiskBps/10000, d.Stop, 1e-9)
	assert.InDelta(t, 94-94*140/10000.0, d.Targets[2], 1e-9)
}

func TestEvaluateTradeDefaultsApplied(t *testing.T) {
	// Zero config falls back to two closes and 120 bps.
	in := EvaluateInput{
		Price:        101,
		Levels:       dto.LevelSet{BreakoutTrigger: 99, BreakdownTrigger: 95},
		LockedCloses: []float64{100, 101},
		Aligned:      boolPtr(true),
	}

	d := EvaluateTrade(in, dto.TradeConfig{})
	require.Equal(t, dto.DirectiveExecute, d.Action)
	assert.InDelta(t, 101-101*DefaultStopRiskBps/10000, d.Stop, 1e-9)
}

func TestEvaluateTradeOnlyTrailingClosesCount(t *testing.T) {
	// Early closes below the trigger do not veto acceptance; only the
	// trailing window matters.
	in := EvaluateInput{
		Price:        102,
		Levels:       dto.LevelSet{BreakoutTrigger: 99, BreakdownTrigger: 95},
		LockedCloses: []float64{96, 97, 100, 101},
	}
	cfg := dto.TradeConfig{AcceptanceCloses: 2, IgnoreAlignment: true}

	d := EvaluateTrade(in, cfg)
	assert.Equal(t, dto.DirectiveExecute, d.Action)
	assert.Equal(t, dto.SideLong, d.Side)
}
