package calcpro

import (
	"math"
	"strconv"
	"strings"
)

// canonical returns the shortest decimal string that round-trips to x,
// without exponent and without sign. Callers must pass a finite value.
func canonical(x float64) string {
	return strconv.FormatFloat(math.Abs(x), 'f', -1, 64)
}

// Split returns the integer and fractional digits of x's canonical decimal
// form, without sign: Split(-12.75) is ("12", "75") and Split(3) is ("3", "").
// Non-finite values give two empty strings.
func Split(x float64) (intPart, fracPart string) {
	if !isFinite(x) {
		return "", ""
	}
	intPart, fracPart, _ = strings.Cut(canonical(x), ".")
	return intPart, fracPart
}

// IntegerDigits returns the number of digits before the decimal point in the
// canonical decimal form of x. The sign is not counted, so IntegerDigits(-12.5)
// is 2 and IntegerDigits(0.5) is 1. Non-finite values report 0.
func IntegerDigits(x float64) int {
	intPart, _ := Split(x)
	return len(intPart)
}

// DecimalDigits returns the number of digits after the decimal point in the
// canonical decimal form of x, or 0 when x has no fractional part.
// Non-finite values report 0.
func DecimalDigits(x float64) int {
	_, fracPart := Split(x)
	return len(fracPart)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
