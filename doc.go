/*
Package calcpro performs float64 addition, subtraction, multiplication and
division without binary floating-point artifacts for decimal inputs.

	0.1 + 0.2            // 0.30000000000000004
	calcpro.Add(0.1, 0.2) // 0.3

Each operand is read through its shortest round-trip decimal form, scaled to
an exact integer by a power of ten, combined, and converted back to the
nearest float64. The decimal digit count of the result follows the operands:
max(da, db) digits for addition and subtraction, da+db digits for
multiplication.

The Accumulator chains operations on a running value:

	v, err := calcpro.New(calcpro.WithPrecision(6)).Div(10000, 0.00011).Value()
	// v == 90909090.909091

A fresh accumulator starts Sub, Mul and Div from their first operand, so
New().Sub(5, 2) is 3 rather than 0-5-2. Once any operation has run, every call
folds into the running value: New().Add(1).Sub(2) is -1.

Division by zero is reported as ErrDivisionByZero instead of producing an
infinity. Inputs must be finite; NaN and infinities are rejected with
ErrNotFinite.
*/
package calcpro
