package calcpro

import (
	"fmt"
	"math/big"
	"strings"
)

// Operator selects the scaling and combination policy of Apply.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the arithmetic symbol of the operator.
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

// Name returns the long name used by the HTTP API and in logs.
func (op Operator) Name() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "subtract"
	case OpMul:
		return "multiply"
	case OpDiv:
		return "divide"
	default:
		return "unknown"
	}
}

// ParseOperator accepts a symbol ("+"), a long name ("subtract") or a short
// name ("sub"), case-insensitively.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add":
		return OpAdd, nil
	case "-", "sub", "subtract":
		return OpSub, nil
	case "*", "x", "mul", "multiply":
		return OpMul, nil
	case "/", "div", "divide":
		return OpDiv, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// Apply computes a op b on decimal-scaled integers so that the result carries
// no binary floating-point artifacts for decimal inputs.
//
// For add, subtract and divide both operands are scaled by 10^max(da, db),
// where da and db are their decimal digit counts. For multiply each operand is
// scaled by its own digit count and the product is rescaled by 10^(da+db).
// Division compares the two scaled integers directly, so the scale cancels.
// A result too large for a float64 fails with ErrOverflow.
func Apply(op Operator, a, b float64) (float64, error) {
	if !op.valid() {
		return 0, &OpError{Op: op, A: a, B: b, Err: ErrUnknownOperator}
	}
	if !isFinite(a) || !isFinite(b) {
		return 0, &OpError{Op: op, A: a, B: b, Err: ErrNotFinite}
	}
	if op == OpDiv && b == 0 {
		return 0, &OpError{Op: op, A: a, B: b, Err: ErrDivisionByZero}
	}

	r := compute(op, a, b)
	if !isFinite(r) {
		return 0, &OpError{Op: op, A: a, B: b, Err: ErrOverflow}
	}
	return r, nil
}

func compute(op Operator, a, b float64) float64 {
	da, db := DecimalDigits(a), DecimalDigits(b)

	switch op {
	case OpMul:
		p := new(big.Int).Mul(scaleToInt(a, da), scaleToInt(b, db))
		return rescale(p, da+db)
	case OpDiv:
		rd := max(da, db)
		return quotient(scaleToInt(a, rd), scaleToInt(b, rd))
	}

	rd := max(da, db)
	x, y := scaleToInt(a, rd), scaleToInt(b, rd)
	if op == OpAdd {
		return rescale(x.Add(x, y), rd)
	}
	return rescale(x.Sub(x, y), rd)
}

func (op Operator) valid() bool {
	return op >= OpAdd && op <= OpDiv
}

// Add returns a + b.
func Add(a, b float64) (float64, error) { return Apply(OpAdd, a, b) }

// Sub returns a - b.
func Sub(a, b float64) (float64, error) { return Apply(OpSub, a, b) }

// Mul returns a * b.
func Mul(a, b float64) (float64, error) { return Apply(OpMul, a, b) }

// Div returns a / b, or ErrDivisionByZero when b is zero.
func Div(a, b float64) (float64, error) { return Apply(OpDiv, a, b) }
