package calcpro

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// fixedLimit is the magnitude from which fixed-point formatting falls back to
// the plain value instead of rounding.
const fixedLimit = 1e21

// RoundFixed rounds x to places decimal digits the way fixed-point string
// formatting does: the exact binary value of x is rounded, with ties going
// away from zero. RoundFixed(1.005, 2) is 1 because 1.005 is stored slightly
// below the tie; RoundFixed(0.125, 2) is 0.13.
func RoundFixed(x float64, places int) float64 {
	if !isFinite(x) || math.Abs(x) >= fixedLimit || places < 0 {
		return x
	}
	exact := new(big.Rat).SetFloat64(x)
	num := decimal.NewFromBigInt(exact.Num(), 0)
	den := decimal.NewFromBigInt(exact.Denom(), 0)
	f, _ := num.DivRound(den, int32(places)).Float64()
	if f == 0 && math.Signbit(x) {
		return math.Copysign(0, -1)
	}
	return f
}
