// Package safe provides numeric conversions that fail instead of overflowing.
package safe

import (
	"fmt"
	"math"
)

// Uint32 converts an int to uint32 with range validation. Output positions
// arrive from providers as plain ints and must fit the uint32 index space.
func Uint32(v int) (uint32, error) {
	if v < 0 || int64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}

// Uint64 converts an int64 to uint64 while guarding against negatives.
// Satoshi amounts are signed in memory but stored in unsigned columns.
func Uint64(v int64) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}
