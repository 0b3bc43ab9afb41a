package calcpro

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// scaleToInt returns x * 10^digits as an exact integer. The shift is applied
// to the canonical decimal string of x, so no binary rounding happens on the
// way up. digits must be at least DecimalDigits(x).
func scaleToInt(x float64, digits int) *big.Int {
	d := decimal.RequireFromString(canonical(x))
	if x < 0 {
		d = d.Neg()
	}
	return d.Shift(int32(digits)).BigInt()
}

// rescale converts n / 10^digits to the nearest float64.
func rescale(n *big.Int, digits int) float64 {
	f, _ := decimal.NewFromBigInt(n, -int32(digits)).Float64()
	return f
}

// quotient returns the nearest float64 to a / b. b must be non-zero.
func quotient(a, b *big.Int) float64 {
	f, _ := new(big.Rat).SetFrac(a, b).Float64()
	return f
}
