package technical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intraday-levels/internal/dto"
)

func TestResample(t *testing.T) {
	source := []dto.Candle{
		{Time: 0, Open: 100, High: 105, Low: 99, Close: 104, Volume: 10},
		{Time: 900, Open: 104, High: 108, Low: 103, Close: 107, Volume: 20},
		{Time: 1800, Open: 107, High: 107, Low: 101, Close: 102, Volume: 5},
		{Time: 2700, Open: 102, High: 103, Low: 100, Close: 101, Volume: 15},
		{Time: 3600, Open: 101, High: 110, Low: 101, Close: 109, Volume: 30},
	}

	out := Resample(source, 60)
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, int64(0), first.Time)
	assert.Equal(t, 100.0, first.Open)
	assert.Equal(t, 108.0, first.High)
	assert.Equal(t, 99.0, first.Low)
	assert.Equal(t, 101.0, first.Close)
	assert.Equal(t, 50.0, first.Volume)

	second := out[1]
	assert.Equal(t, int64(3600), second.Time)
	assert.Equal(t, 101.0, second.Open)
	assert.Equal(t, 109.0, second.Close)
}

func TestResampleEmpty(t *testing.T) {
	assert.Empty(t, Resample(nil, 60))
	assert.Empty(t, Resample([]dto.Candle{}, 60))
}

func TestResampleIdempotent(t *testing.T) {
	// Series already aligned to 15 minute boundaries passes through a 15
	// minute resample unchanged.
	source := []dto.Candle{
		{Time: 0, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 3},
		{Time: 900, Open: 1.5, High: 3, Low: 1, Close: 2, Volume: 4},
		{Time: 1800, Open: 2, High: 2.5, Low: 1.8, Close: 2.2, Volume: 1},
	}
	assert.Equal(t, source, Resample(source, 15))
}
