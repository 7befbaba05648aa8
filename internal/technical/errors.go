package technical

import "errors"

// ErrEmptyInput is returned when a computation that requires at least one
// candle receives a zero-length slice. Degenerate but non-empty input (flat
// range, zero volume) is handled by collapsing, not by erroring.
var ErrEmptyInput = errors.New("technical: empty candle input")
