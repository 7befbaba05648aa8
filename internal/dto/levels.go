package dto

// VolumeProfile is the point of control and value area bounds of a traded
// volume histogram. For non-degenerate input VAL <= POC <= VAH.
type VolumeProfile struct {
	POC float64 `json:"poc"`
	VAH float64 `json:"vah"`
	VAL float64 `json:"val"`
}

// Degenerate reports whether the profile collapsed to a single price.
func (vp VolumeProfile) Degenerate() bool {
	return vp.VAH == vp.VAL
}

// PivotPair holds the most recently confirmed structural pivot high (supply)
// and pivot low (demand) for one timeframe. Zero means undetected.
type PivotPair struct {
	Supply float64 `json:"supply"`
	Demand float64 `json:"demand"`
}

// Shelf is a pivot-derived price level on a higher timeframe.
type Shelf struct {
	Level     float64 `json:"level"`
	Timeframe string  `json:"tf"`
}

type HTFShelves struct {
	Resistance []Shelf `json:"resistance"`
	Support    []Shelf `json:"support"`
}

// LevelSet is the fused, locked truth for one session. It is computed once
// per session refresh and never mutated by downstream consumers.
type LevelSet struct {
	DailySupport     float64    `json:"daily_support"`
	DailyResistance  float64    `json:"daily_resistance"`
	BreakoutTrigger  float64    `json:"breakout_trigger"`
	BreakdownTrigger float64    `json:"breakdown_trigger"`
	Range30mHigh     float64    `json:"range30m_high"`
	Range30mLow      float64    `json:"range30m_low"`
	F24VAH           float64    `json:"f24_vah"`
	F24VAL           float64    `json:"f24_val"`
	F24POC           float64    `json:"f24_poc"`
	HTFShelves       HTFShelves `json:"htf_shelves"`
}

func (ls LevelSet) Empty() bool {
	return ls.BreakoutTrigger == 0 && ls.BreakdownTrigger == 0
}

type Range30m struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}
