package hint

import "math"

// RegisterBuiltins adds the stock hint functions. All builtins are total:
// the degenerate cases (zero divisor) yield 0 rather than panicking, since
// a panicking hint aborts the whole evaluation pass.
func RegisterBuiltins(r *Registry) {
	r.Register("isqrt", 1, Isqrt)
	r.Register("quotient", 2, Quotient)
	r.Register("remainder", 2, Remainder)
}

// Isqrt returns floor(sqrt(vals[0])). float64 represents every uint32
// exactly, so the conversion round trip is lossless.
func Isqrt(vals []uint32) uint32 {
	return uint32(math.Sqrt(float64(vals[0])))
}

// Quotient returns vals[0] / vals[1] (integer division), or 0 when the
// divisor is 0.
func Quotient(vals []uint32) uint32 {
	if vals[1] == 0 {
		return 0
	}
	return vals[0] / vals[1]
}

// Remainder returns vals[0] % vals[1], or 0 when the divisor is 0.
func Remainder(vals []uint32) uint32 {
	if vals[1] == 0 {
		return 0
	}
	return vals[0] % vals[1]
}
