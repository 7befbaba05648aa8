package technical

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"intraday-levels/internal/dto"
)

func candlesFromHighsLows(highs, lows []float64) []dto.Candle {
	out := make([]dto.Candle, len(highs))
	for i := range highs {
		out[i] = dto.Candle{
			Time:   int64(i * 900),
			Open:   (highs[i] + lows[i]) / 2,
			High:   highs[i],
			Low:    lows[i],
			Close:  (highs[i] + lows[i]) / 2,
			Volume: 1,
		}
	}
	return out
}

func TestLastPivots(t *testing.T) {
	tests := []struct {
		name       string
		highs      []float64
		lows       []float64
		wantSupply float64
		wantDemand float64
	}{
		{
			name:       "clean swing high and low",
			highs:      []float64{10, 11, 12, 20, 12, 11, 10},
			lows:       []float64{9, 8, 7, 3, 7, 8, 9},
			wantSupply: 20,
			wantDemand: 3,
		},
		{
			name:       "flat highs never confirm a pivot high",
			highs:      []float64{10, 10, 10, 10, 10, 10, 10, 10},
			lows:       []float64{5, 4, 3, 1, 3, 4, 5, 6},
			wantSupply: 0,
			wantDemand: 1,
		},
		{
			name:       "series shorter than window yields sentinels",
			highs:      []float64{10, 20, 10},
			lows:       []float64{5, 4, 5},
			wantSupply: 0,
			wantDemand: 0,
		},
		{
			name:       "later pivot overwrites earlier",
			highs:      []float64{1, 2, 3, 15, 3, 2, 1, 2, 3, 18, 3, 2, 1},
			lows:       []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
			wantSupply: 18,
			wantDemand: 0,
		},
		{
			name:       "trailing tie resolves toward the earlier candle",
			highs:      []float64{1, 2, 3, 15, 15, 2, 1, 0, 0},
			lows:       []float64{1, 1, 1, 1, 1, 1, 1, 1, 1},
			wantSupply: 15,
			wantDemand: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := LastPivots(candlesFromHighsLows(tt.highs, tt.lows), 3, 3)
			assert.Equal(t, tt.wantSupply, pair.Supply)
			assert.Equal(t, tt.wantDemand, pair.Demand)
		})
	}
}

func TestShelves(t *testing.T) {
	// Seven distinct swing highs; only the five highest survive, ascending.
	highs := []float64{
		1, 2, 3, 40, 3, 2, 1,
		2, 3, 4, 50, 4, 3, 2,
		3, 4, 5, 60, 5, 4, 3,
		4, 5, 6, 70, 6, 5, 4,
		5, 6, 7, 80, 7, 6, 5,
		6, 7, 8, 90, 8, 7, 6,
		7, 8, 9, 95, 9, 8, 7,
	}
	lows := make([]float64, len(highs))
	for i := range lows {
		lows[i] = 0.5
	}

	supply, demand := Shelves(candlesFromHighsLows(highs, lows), 3, 3)
	assert.Equal(t, []float64{60, 70, 80, 90, 95}, supply)
	assert.Empty(t, demand)
}

func TestShelvesShortSeries(t *testing.T) {
	supply, demand := Shelves(candlesFromHighsLows([]float64{1, 2}, []float64{1, 2}), 3, 3)
	assert.Empty(t, supply)
	assert.Empty(t, demand)
}
